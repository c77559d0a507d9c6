package alerts

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Rule defines a critical-area alert: when enough detections land inside
// its bounding region within the lookback window, the rule fires.
type Rule struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description"`
	MinLat          float64        `json:"min_lat"`
	MaxLat          float64        `json:"max_lat"`
	MinLon          float64        `json:"min_lon"`
	MaxLon          float64        `json:"max_lon"`
	Threshold       int            `gorm:"not null;default:5" json:"threshold"`
	Severity        string         `gorm:"not null;default:'warning'" json:"severity"`
	Recipients      datatypes.JSON `json:"recipients"`
	CooldownMinutes int            `gorm:"not null;default:60" json:"cooldown_minutes"`
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`
	LastTriggered   *time.Time     `json:"last_triggered,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Recipients is the decoded form of Rule.Recipients.
type Recipients struct {
	SMS   []string `json:"sms"`
	Email []string `json:"email"`
}

// DecodeRecipients parses the rule's recipient list. A rule without
// recipients still fires (dashboard broadcast only).
func (r *Rule) DecodeRecipients() Recipients {
	var out Recipients
	if len(r.Recipients) > 0 {
		_ = json.Unmarshal(r.Recipients, &out)
	}
	return out
}

// InCooldown reports whether the rule fired within its cooldown window.
func (r *Rule) InCooldown(now time.Time) bool {
	if r.LastTriggered == nil || r.CooldownMinutes <= 0 {
		return false
	}
	return now.Sub(*r.LastTriggered) < time.Duration(r.CooldownMinutes)*time.Minute
}
