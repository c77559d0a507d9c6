package tutorial

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/session"
)

// Handler exposes the onboarding wizard over HTTP. Each request operates
// on the calling session's own Progress.
type Handler struct {
	machine *Machine
	store   *SessionStore
	logger  *zap.Logger
}

// NewHandler creates a new tutorial handler
func NewHandler(machine *Machine, store *SessionStore, logger *zap.Logger) *Handler {
	return &Handler{
		machine: machine,
		store:   store,
		logger:  logger,
	}
}

// RegisterRoutes registers tutorial routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	tour := router.Group("/tutorial")
	{
		tour.GET("", h.getState)
		tour.GET("/step", h.getStepForPage)
		tour.POST("/start", h.transition((*Machine).Start))
		tour.POST("/next", h.transition((*Machine).Advance))
		tour.POST("/previous", h.transition((*Machine).Retreat))
		tour.POST("/skip", h.transition((*Machine).Skip))
		tour.POST("/complete", h.transition((*Machine).Complete))
		tour.POST("/restart", h.transition((*Machine).Restart))
	}
}

// stateResponse is what the UI renders from: the step to show plus the
// progress indicators.
type stateResponse struct {
	Active       bool   `json:"active"`
	Completed    bool   `json:"completed"`
	CurrentIndex int    `json:"current_index"`
	TotalSteps   int    `json:"total_steps"`
	Step         Step   `json:"step"`
	Tip          string `json:"tip"`
	Visited      []int  `json:"visited"`
}

func (h *Handler) state(p *Progress) stateResponse {
	step := h.machine.CurrentStep(p)
	return stateResponse{
		Active:       p.Active,
		Completed:    p.Completed,
		CurrentIndex: p.CurrentIndex,
		TotalSteps:   h.machine.StepCount(),
		Step:         step,
		Tip:          TipForPage(step.Page),
		Visited:      p.VisitedIndices(),
	}
}

// getState handles GET /tutorial
func (h *Handler) getState(c *gin.Context) {
	p := h.store.Progress(session.ID(c))
	c.JSON(http.StatusOK, h.state(p))
}

// transition wraps a Machine transition as a handler. Transitions never
// fail; the response is always the resulting state.
func (h *Handler) transition(apply func(*Machine, *Progress)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := session.ID(c)
		p := h.store.Progress(sessionID)
		apply(h.machine, p)
		h.logger.Debug("Tutorial transition applied",
			zap.String("session_id", sessionID),
			zap.Int("current_index", p.CurrentIndex),
			zap.Bool("active", p.Active),
			zap.Bool("completed", p.Completed))
		c.JSON(http.StatusOK, h.state(p))
	}
}

// getStepForPage handles GET /tutorial/step?page=
func (h *Handler) getStepForPage(c *gin.Context) {
	page := c.Query("page")
	if page == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page query parameter is required"})
		return
	}

	step, index, ok := h.machine.StepForPage(page)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no tutorial step for page " + page})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":  step,
		"index": index,
		"tip":   TipForPage(step.Page),
	})
}
