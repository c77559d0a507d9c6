package repairs

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for repair requests
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new repairs handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers repair request routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	repairs := router.Group("/repairs")
	{
		repairs.POST("", h.Submit)
		repairs.GET("", h.List)
		repairs.GET("/:requestId", h.Get)
		repairs.GET("/:requestId/history", h.History)
		repairs.PUT("/:requestId/status", h.UpdateStatus)
	}
}

// Submit handles POST /repairs
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}

	request, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to submit repair request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit repair request"})
		return
	}
	c.JSON(http.StatusCreated, request)
}

// List handles GET /repairs
func (h *Handler) List(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.logger.Error("Failed to list repair requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list repair requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

// Get handles GET /repairs/:requestId
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	request, history, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request, "history": history})
}

// History handles GET /repairs/:requestId/history
func (h *Handler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	_, history, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateStatus handles PUT /repairs/:requestId/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.service.Transition(c.Request.Context(), id, strings.ToUpper(req.Status), req.Note)
	if err != nil {
		if strings.Contains(err.Error(), "cannot transition") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair request not found"})
		return
	}
	c.JSON(http.StatusOK, request)
}
