package detections

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detector"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/export"
	"roadwatch/pothole-portal/pothole-portal-backend/pkg/storage"
)

// Service provides business logic for detection runs and record access
type Service struct {
	repo     Repository
	detector detector.Detector
	store    storage.Store
	logger   *zap.Logger
}

// NewService creates a new detections service
func NewService(repo Repository, det detector.Detector, store storage.Store, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		detector: det,
		store:    store,
		logger:   logger,
	}
}

// Result is the outcome of one detection run.
type Result struct {
	ImageID    uuid.UUID            `json:"image_id"`
	Filename   string               `json:"filename"`
	ImagePath  string               `json:"image_path"`
	Detections []detector.Detection `json:"detections"`
	Metadata   detector.Metadata    `json:"metadata"`
}

// RunDetection runs the detection backend over an uploaded image and
// persists the outcome. Asset and database writes are best-effort: a
// failed write is logged and the detections are still returned, matching
// the portal's demo posture.
func (s *Service) RunDetection(ctx context.Context, filename string, width, height int, imageBody io.Reader) (*Result, error) {
	imagePath := ""
	if imageBody != nil {
		path, err := s.store.SaveUpload(ctx, filename, imageBody)
		if err != nil {
			s.logger.Warn("Failed to store uploaded image", zap.String("filename", filename), zap.Error(err))
		} else {
			imagePath = path
		}
	}

	dets, meta, err := s.detector.Detect(ctx, detector.ImageInfo{
		Filename: filename,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	result := &Result{
		Filename:   filename,
		ImagePath:  imagePath,
		Detections: dets,
		Metadata:   meta,
	}

	s.saveResultDoc(ctx, result)
	s.saveToDatabase(ctx, result, width, height)

	return result, nil
}

// saveResultDoc writes the JSON result document next to the image.
func (s *Service) saveResultDoc(ctx context.Context, result *Result) {
	doc, err := json.MarshalIndent(map[string]interface{}{
		"filename":   result.Filename,
		"timestamp":  result.Metadata.Timestamp,
		"detections": result.Detections,
		"metadata":   result.Metadata,
	}, "", "    ")
	if err != nil {
		s.logger.Warn("Failed to encode result document", zap.Error(err))
		return
	}
	if _, err := s.store.SaveResultDoc(ctx, result.Filename, doc); err != nil {
		s.logger.Warn("Failed to store result document", zap.String("filename", result.Filename), zap.Error(err))
	}
}

// saveToDatabase performs the best-effort database insert.
func (s *Service) saveToDatabase(ctx context.Context, result *Result, width, height int) {
	metaJSON, err := json.Marshal(result.Metadata)
	if err != nil {
		s.logger.Warn("Failed to encode run metadata", zap.Error(err))
		metaJSON = nil
	}

	image := &Image{
		Filename: result.Filename,
		Filepath: result.ImagePath,
		Width:    width,
		Height:   height,
	}
	meta := &ImageMetadata{
		Latitude:      result.Metadata.Latitude,
		Longitude:     result.Metadata.Longitude,
		InferenceTime: result.Metadata.InferenceTime,
		ModelName:     result.Metadata.Model,
		MetadataJSON:  datatypes.JSON(metaJSON),
	}
	rows := make([]Detection, len(result.Detections))
	for i, d := range result.Detections {
		rows[i] = Detection{
			ClassID:    d.ClassID,
			ClassName:  d.ClassName,
			Confidence: d.Confidence,
			BBoxX1:     d.BBox.X1,
			BBoxY1:     d.BBox.Y1,
			BBoxX2:     d.BBox.X2,
			BBoxY2:     d.BBox.Y2,
		}
	}

	if err := s.repo.SaveResult(ctx, image, meta, rows); err != nil {
		s.logger.Warn("Could not save detection result to database",
			zap.String("filename", result.Filename), zap.Error(err))
		return
	}
	result.ImageID = image.ID
}

// Records returns flattened detection rows for the database view.
func (s *Service) Records(ctx context.Context, limit int) ([]Record, error) {
	return s.repo.ListRecords(ctx, limit)
}

// ExportImage renders a stored image's detections in the requested
// format. The stored run metadata is passed through verbatim.
func (s *Service) ExportImage(ctx context.Context, imageID uuid.UUID, format string) ([]byte, string, error) {
	image, meta, err := s.repo.GetImage(ctx, imageID)
	if err != nil {
		return nil, "", err
	}

	dets := make([]detector.Detection, len(image.Detections))
	for i, row := range image.Detections {
		dets[i] = detector.Detection{
			BBox:       detector.BoundingBox{X1: row.BBoxX1, Y1: row.BBoxY1, X2: row.BBoxX2, Y2: row.BBoxY2},
			Confidence: row.Confidence,
			ClassID:    row.ClassID,
			ClassName:  row.ClassName,
		}
	}

	var metadata map[string]interface{}
	if meta != nil && len(meta.MetadataJSON) > 0 {
		if err := json.Unmarshal(meta.MetadataJSON, &metadata); err != nil {
			s.logger.Warn("Stored metadata is not valid JSON", zap.String("image_id", imageID.String()))
		}
	}
	if metadata == nil {
		metadata = map[string]interface{}{
			"image_width":  image.Width,
			"image_height": image.Height,
		}
	}

	return export.Export(dets, metadata, format)
}

// GeoSummaries exposes geotagged per-image counts for the map module.
func (s *Service) GeoSummaries(ctx context.Context) ([]GeoSummary, error) {
	return s.repo.GeoSummaries(ctx)
}

// CountInBounds exposes the alert engine's region count query.
func (s *Service) CountInBounds(ctx context.Context, since time.Time, minLat, maxLat, minLon, maxLon float64) (int64, error) {
	return s.repo.CountInBounds(ctx, since, minLat, maxLat, minLon, maxLon)
}
