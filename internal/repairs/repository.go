package repairs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for repair request data access
type Repository interface {
	Create(ctx context.Context, req *Request) error
	Get(ctx context.Context, id uuid.UUID) (*Request, error)
	List(ctx context.Context, status string) ([]Request, error)
	UpdateStatus(ctx context.Context, req *Request, history *StatusHistory) error
	History(ctx context.Context, requestID uuid.UUID) ([]StatusHistory, error)
}

// GormRepository implements Repository using GORM/PostgreSQL
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repairs repository and migrates its
// tables.
func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&Request{}, &StatusHistory{}); err != nil {
		return nil, fmt.Errorf("failed to migrate repair tables: %w", err)
	}
	return &GormRepository{db: db}, nil
}

func (r *GormRepository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return fmt.Errorf("failed to create repair request: %w", err)
		}
		history := &StatusHistory{
			RequestID: req.ID,
			Status:    req.Status,
			Note:      "Request submitted",
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}
		return nil
	})
}

func (r *GormRepository) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	var req Request
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("repair request %s not found: %w", id, err)
	}
	return &req, nil
}

func (r *GormRepository) List(ctx context.Context, status string) ([]Request, error) {
	query := r.db.WithContext(ctx).Order("submitted_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []Request
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list repair requests: %w", err)
	}
	return requests, nil
}

func (r *GormRepository) UpdateStatus(ctx context.Context, req *Request, history *StatusHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(req).Error; err != nil {
			return fmt.Errorf("failed to update repair request: %w", err)
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}
		return nil
	})
}

func (r *GormRepository) History(ctx context.Context, requestID uuid.UUID) ([]StatusHistory, error) {
	var history []StatusHistory
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("changed_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	return history, nil
}
