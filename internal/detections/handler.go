package detections

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/export"
)

// Handler handles HTTP requests for detection operations
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new detections handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers detection routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	dets := router.Group("/detections")
	{
		dets.POST("/detect", h.detect)
		dets.GET("", h.listRecords)
		dets.GET("/:imageId/export", h.exportImage)
	}
}

// detect handles POST /api/v1/detections/detect
func (h *Handler) detect(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image: " + err.Error()})
		return
	}
	bounds := img.Bounds()

	if _, err := file.Seek(0, 0); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rewind upload"})
		return
	}

	result, err := h.service.RunDetection(c.Request.Context(), header.Filename, bounds.Dx(), bounds.Dy(), file)
	if err != nil {
		h.logger.Error("Detection run failed", zap.String("filename", header.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// listRecords handles GET /api/v1/detections
func (h *Handler) listRecords(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.service.Records(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list detection records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list detections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detections": records,
		"count":      len(records),
	})
}

// exportImage handles GET /api/v1/detections/:imageId/export?format=
func (h *Handler) exportImage(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	format := c.DefaultQuery("format", export.FormatCSV)
	data, contentType, err := h.service.ExportImage(c.Request.Context(), imageID, format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	disposition := fmt.Sprintf("attachment; filename=detections_%s.%s", imageID, format)
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, contentType, data)
}
