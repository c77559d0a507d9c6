package geomap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves map visualization data
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new geomap handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers map routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/map/potholes", h.getPotholes)
}

// getPotholes handles GET /api/v1/map/potholes
func (h *Handler) getPotholes(c *gin.Context) {
	fc, err := h.service.PotholeFeatures(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build map data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build map data"})
		return
	}
	c.JSON(http.StatusOK, fc)
}
