package repairs

import (
	"time"

	"github.com/google/uuid"
)

// Repair request statuses.
const (
	StatusSubmitted    = "SUBMITTED"
	StatusAcknowledged = "ACKNOWLEDGED"
	StatusScheduled    = "SCHEDULED"
	StatusInProgress   = "IN_PROGRESS"
	StatusCompleted    = "COMPLETED"
	StatusRejected     = "REJECTED"
)

// Request represents a road repair request raised from a detection
type Request struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ImageID     *uuid.UUID `gorm:"type:uuid;index" json:"image_id,omitempty"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Priority    string     `gorm:"not null;default:'medium'" json:"priority"`
	Status      string     `gorm:"not null;default:'SUBMITTED'" json:"status"`
	ContactName string     `json:"contact_name"`
	SubmittedAt time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StatusHistory tracks a request's status changes
type StatusHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	Status    string    `gorm:"not null" json:"status"`
	Note      string    `json:"note"`
	ChangedAt time.Time `gorm:"autoCreateTime" json:"changed_at"`
}
