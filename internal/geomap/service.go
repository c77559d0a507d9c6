package geomap

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detections"
)

// SummarySource supplies geotagged per-image detection counts.
type SummarySource interface {
	GeoSummaries(ctx context.Context) ([]detections.GeoSummary, error)
}

// Service turns geotagged detections into map-ready GeoJSON
type Service struct {
	source SummarySource
	logger *zap.Logger
}

// NewService creates a new geomap service
func NewService(source SummarySource, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// PotholeFeatures builds a GeoJSON FeatureCollection with one point per
// geotagged image, carrying its detection count for marker sizing.
func (s *Service) PotholeFeatures(ctx context.Context) (*geojson.FeatureCollection, error) {
	summaries, err := s.source.GeoSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load geotagged detections: %w", err)
	}

	fc := geojson.NewFeatureCollection()
	for _, sum := range summaries {
		feature := geojson.NewFeature(orb.Point{sum.Longitude, sum.Latitude})
		feature.Properties = geojson.Properties{
			"image_id":        sum.ImageID.String(),
			"filename":        sum.Filename,
			"detection_count": sum.DetectionCount,
		}
		fc.Append(feature)
	}

	s.logger.Debug("Built pothole feature collection", zap.Int("features", len(fc.Features)))
	return fc, nil
}
