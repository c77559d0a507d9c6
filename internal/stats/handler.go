package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles dashboard statistics requests
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new stats handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/summary", h.getSummary)
}

// getSummary handles GET /api/v1/dashboard/summary
func (h *Handler) getSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Summary(c.Request.Context()))
}
