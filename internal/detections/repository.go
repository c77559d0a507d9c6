package detections

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for detection data access
type Repository interface {
	SaveResult(ctx context.Context, image *Image, meta *ImageMetadata, dets []Detection) error
	ListRecords(ctx context.Context, limit int) ([]Record, error)
	GetImage(ctx context.Context, imageID uuid.UUID) (*Image, *ImageMetadata, error)
	GeoSummaries(ctx context.Context) ([]GeoSummary, error)
	CountInBounds(ctx context.Context, since time.Time, minLat, maxLat, minLon, maxLon float64) (int64, error)
}

// GormRepository implements Repository using GORM/PostgreSQL
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new detections repository and migrates its
// tables.
func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&Image{}, &Detection{}, &ImageMetadata{}); err != nil {
		return nil, fmt.Errorf("failed to migrate detection tables: %w", err)
	}
	return &GormRepository{db: db}, nil
}

// SaveResult stores an image, its run metadata, and its detections in one
// transaction.
func (r *GormRepository) SaveResult(ctx context.Context, image *Image, meta *ImageMetadata, dets []Detection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to create image record: %w", err)
		}

		meta.ImageID = image.ID
		if err := tx.Create(meta).Error; err != nil {
			return fmt.Errorf("failed to create metadata record: %w", err)
		}

		for i := range dets {
			dets[i].ImageID = image.ID
		}
		if len(dets) > 0 {
			if err := tx.Create(&dets).Error; err != nil {
				return fmt.Errorf("failed to create detection records: %w", err)
			}
		}
		return nil
	})
}

// ListRecords returns flattened detection rows, newest first.
func (r *GormRepository) ListRecords(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []Record
	err := r.db.WithContext(ctx).
		Table("detections").
		Select(`detections.id, detections.image_id, images.filename, images.filepath,
			detections.class_name, detections.confidence,
			detections.b_box_x1 AS b_box_x1, detections.b_box_y1 AS b_box_y1,
			detections.b_box_x2 AS b_box_x2, detections.b_box_y2 AS b_box_y2,
			detections.detection_date, image_metadata.latitude, image_metadata.longitude`).
		Joins("JOIN images ON images.id = detections.image_id").
		Joins("LEFT JOIN image_metadata ON image_metadata.image_id = images.id").
		Order("detections.detection_date DESC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list detection records: %w", err)
	}
	return records, nil
}

// GetImage returns an image with its detections preloaded, plus its
// metadata row when present.
func (r *GormRepository) GetImage(ctx context.Context, imageID uuid.UUID) (*Image, *ImageMetadata, error) {
	var image Image
	if err := r.db.WithContext(ctx).Preload("Detections").First(&image, "id = ?", imageID).Error; err != nil {
		return nil, nil, fmt.Errorf("image %s not found: %w", imageID, err)
	}

	var meta ImageMetadata
	if err := r.db.WithContext(ctx).First(&meta, "image_id = ?", imageID).Error; err != nil {
		// Metadata is optional; an image without it is still servable.
		return &image, nil, nil
	}
	return &image, &meta, nil
}

// GeoSummaries returns per-image detection counts for geotagged images.
func (r *GormRepository) GeoSummaries(ctx context.Context) ([]GeoSummary, error) {
	var summaries []GeoSummary
	err := r.db.WithContext(ctx).
		Table("images").
		Select(`images.id AS image_id, images.filename,
			image_metadata.latitude, image_metadata.longitude,
			COUNT(detections.id) AS detection_count`).
		Joins("JOIN image_metadata ON image_metadata.image_id = images.id").
		Joins("JOIN detections ON detections.image_id = images.id").
		Where("image_metadata.latitude IS NOT NULL AND image_metadata.longitude IS NOT NULL").
		Group("images.id, images.filename, image_metadata.latitude, image_metadata.longitude").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query geotagged summaries: %w", err)
	}
	return summaries, nil
}

// CountInBounds counts detections since a point in time whose image is
// geotagged inside the given bounding box. Used by alert rule evaluation.
func (r *GormRepository) CountInBounds(ctx context.Context, since time.Time, minLat, maxLat, minLon, maxLon float64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("detections").
		Joins("JOIN image_metadata ON image_metadata.image_id = detections.image_id").
		Where("detections.detection_date >= ?", since).
		Where("image_metadata.latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("image_metadata.longitude BETWEEN ? AND ?", minLon, maxLon).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count detections in bounds: %w", err)
	}
	return count, nil
}
