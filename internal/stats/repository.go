package stats

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the read-side queries behind the dashboard.
type Repository interface {
	TotalImages(ctx context.Context) (int, error)
	TotalDetections(ctx context.Context) (int, error)
	AverageConfidence(ctx context.Context) (float64, error)
	ImagesWithDetections(ctx context.Context) (int, error)
	DailyCounts(ctx context.Context) ([]DailyCount, error)
}

// DailyCount is the number of detections recorded on one day.
type DailyCount struct {
	Date  string `db:"date" json:"date"`
	Count int    `db:"count" json:"count"`
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new stats repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) TotalImages(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM images`); err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) TotalDetections(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM detections`); err != nil {
		return 0, fmt.Errorf("failed to count detections: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) AverageConfidence(ctx context.Context) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(confidence), 0) FROM detections`
	if err := r.db.GetContext(ctx, &avg, query); err != nil {
		return 0, fmt.Errorf("failed to average confidence: %w", err)
	}
	return avg, nil
}

func (r *PostgresRepository) ImagesWithDetections(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT image_id) FROM detections`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count images with detections: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) DailyCounts(ctx context.Context) ([]DailyCount, error) {
	var counts []DailyCount
	query := `
		SELECT TO_CHAR(detection_date::date, 'YYYY-MM-DD') AS date,
		       COUNT(id) AS count
		FROM detections
		GROUP BY detection_date::date
		ORDER BY detection_date::date`
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	return counts, nil
}
