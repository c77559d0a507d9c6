package stats

import (
	"context"

	"go.uber.org/zap"
)

// Summary aggregates detection statistics for the dashboard.
type Summary struct {
	TotalImages         int     `json:"total_images"`
	TotalDetections     int     `json:"total_detections"`
	AvgPotholesPerImage float64 `json:"avg_potholes_per_image"`
	AvgConfidence       float64 `json:"avg_confidence"`
	DetectionRate       float64 `json:"detection_rate"`
	Dates               []string `json:"dates"`
	DailyCounts         []int    `json:"daily_counts"`
}

// Service provides dashboard statistics
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new stats service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Summary computes dashboard statistics. Query failures degrade to zero
// values: the dashboard renders an empty state instead of an error page.
func (s *Service) Summary(ctx context.Context) Summary {
	summary := Summary{
		Dates:       []string{},
		DailyCounts: []int{},
	}

	totalImages, err := s.repo.TotalImages(ctx)
	if err != nil {
		s.logger.Error("Failed to compute dashboard statistics", zap.Error(err))
		return summary
	}
	summary.TotalImages = totalImages

	if summary.TotalDetections, err = s.repo.TotalDetections(ctx); err != nil {
		s.logger.Error("Failed to count detections", zap.Error(err))
		return summary
	}
	if summary.AvgConfidence, err = s.repo.AverageConfidence(ctx); err != nil {
		s.logger.Error("Failed to average confidence", zap.Error(err))
		return summary
	}

	if totalImages > 0 {
		summary.AvgPotholesPerImage = float64(summary.TotalDetections) / float64(totalImages)

		withDetections, err := s.repo.ImagesWithDetections(ctx)
		if err != nil {
			s.logger.Error("Failed to compute detection rate", zap.Error(err))
			return summary
		}
		summary.DetectionRate = float64(withDetections) / float64(totalImages) * 100
	}

	daily, err := s.repo.DailyCounts(ctx)
	if err != nil {
		// Daily series is decorative; keep the totals.
		s.logger.Warn("Failed to compute daily counts", zap.Error(err))
		return summary
	}
	for _, d := range daily {
		summary.Dates = append(summary.Dates, d.Date)
		summary.DailyCounts = append(summary.DailyCounts, d.Count)
	}

	return summary
}
