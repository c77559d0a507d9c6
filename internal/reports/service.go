package reports

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/detections"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/stats"
)

// FormatPDF and FormatXLSX are the supported report formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"

	recordLimit = 200
)

// Service generates summary reports from the dashboard statistics and
// the stored detection records.
type Service struct {
	stats      *stats.Service
	detections *detections.Service
	logger     *zap.Logger
}

// NewService creates a new reports service
func NewService(stats *stats.Service, detections *detections.Service, logger *zap.Logger) *Service {
	return &Service{stats: stats, detections: detections, logger: logger}
}

// Report is a rendered report ready to be sent to the client.
type Report struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Generate builds a summary report in the requested format.
func (s *Service) Generate(ctx context.Context, format string) (*Report, error) {
	summary := s.stats.Summary(ctx)
	records, err := s.detections.Records(ctx, recordLimit)
	if err != nil {
		s.logger.Warn("Failed to load detection records for report", zap.Error(err))
		records = nil
	}

	stamp := time.Now().Format("20060102_150405")
	switch format {
	case FormatPDF:
		content, err := buildPDF(&summary, records, DefaultPDFOptions())
		if err != nil {
			return nil, err
		}
		return &Report{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("pothole_report_%s.pdf", stamp),
		}, nil
	case FormatXLSX:
		content, err := buildWorkbook(&summary, records)
		if err != nil {
			return nil, err
		}
		return &Report{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("pothole_report_%s.xlsx", stamp),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %q", format)
	}
}
