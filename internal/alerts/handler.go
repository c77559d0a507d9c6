package alerts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/notifications"
)

// Handler handles HTTP requests for alert rules
type Handler struct {
	repo   Repository
	engine *Engine
	ws     *notifications.Manager
	logger *zap.Logger
}

// NewHandler creates a new alerts handler
func NewHandler(repo Repository, engine *Engine, ws *notifications.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		repo:   repo,
		engine: engine,
		ws:     ws,
		logger: logger,
	}
}

// RegisterRoutes registers alert routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/alerts")
	{
		alerts.POST("/rules", h.createRule)
		alerts.GET("/rules", h.listRules)
		alerts.GET("/rules/:id", h.getRule)
		alerts.PUT("/rules/:id", h.updateRule)
		alerts.DELETE("/rules/:id", h.deleteRule)
		alerts.POST("/rules/:id/test", h.testRule)
		alerts.GET("/ws", h.serveWebSocket)
	}
}

// createRule handles POST /api/v1/alerts/rules
func (h *Handler) createRule(c *gin.Context) {
	var rule Rule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rule.Threshold <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be positive"})
		return
	}

	if err := h.repo.Create(c.Request.Context(), &rule); err != nil {
		h.logger.Error("Failed to create alert rule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create rule"})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

// listRules handles GET /api/v1/alerts/rules
func (h *Handler) listRules(c *gin.Context) {
	rules, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list alert rules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules, "count": len(rules)})
}

// getRule handles GET /api/v1/alerts/rules/:id
func (h *Handler) getRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	rule, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// updateRule handles PUT /api/v1/alerts/rules/:id
func (h *Handler) updateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	rule, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := c.ShouldBindJSON(rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rule.ID = id

	if err := h.repo.Update(c.Request.Context(), rule); err != nil {
		h.logger.Error("Failed to update alert rule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update rule"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// deleteRule handles DELETE /api/v1/alerts/rules/:id
func (h *Handler) deleteRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete alert rule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// testRule handles POST /api/v1/alerts/rules/:id/test — fires the rule's
// notifications immediately regardless of thresholds.
func (h *Handler) testRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	rule, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.engine.Trigger(c.Request.Context(), rule, 0)
	c.JSON(http.StatusOK, gin.H{"status": "test alert dispatched"})
}

// serveWebSocket handles GET /api/v1/alerts/ws
func (h *Handler) serveWebSocket(c *gin.Context) {
	if err := h.ws.HandleConnection(c.Writer, c.Request); err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
	}
}
