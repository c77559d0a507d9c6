package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for alert rule data access
type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	Get(ctx context.Context, id uuid.UUID) (*Rule, error)
	ListActive(ctx context.Context) ([]Rule, error)
	List(ctx context.Context) ([]Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkTriggered(ctx context.Context, id uuid.UUID, at time.Time) error
}

// GormRepository implements Repository using GORM/PostgreSQL
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new alerts repository and migrates its table.
func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&Rule{}); err != nil {
		return nil, fmt.Errorf("failed to migrate alert tables: %w", err)
	}
	return &GormRepository{db: db}, nil
}

func (r *GormRepository) Create(ctx context.Context, rule *Rule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create alert rule: %w", err)
	}
	return nil
}

func (r *GormRepository) Get(ctx context.Context, id uuid.UUID) (*Rule, error) {
	var rule Rule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("alert rule %s not found: %w", id, err)
	}
	return &rule, nil
}

func (r *GormRepository) ListActive(ctx context.Context) ([]Rule, error) {
	var rules []Rule
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list active alert rules: %w", err)
	}
	return rules, nil
}

func (r *GormRepository) List(ctx context.Context) ([]Rule, error) {
	var rules []Rule
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list alert rules: %w", err)
	}
	return rules, nil
}

func (r *GormRepository) Update(ctx context.Context, rule *Rule) error {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update alert rule: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&Rule{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete alert rule: %w", err)
	}
	return nil
}

func (r *GormRepository) MarkTriggered(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&Rule{}).
		Where("id = ?", id).
		Update("last_triggered", at).Error
	if err != nil {
		return fmt.Errorf("failed to mark rule triggered: %w", err)
	}
	return nil
}
