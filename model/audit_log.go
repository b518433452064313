package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog persists authentication events (logins, signups, lockouts) for
// after-the-fact review. Writes are best-effort and never fail the request.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventType string         `gorm:"size:64;index" json:"event_type"`
	UserID    string         `gorm:"type:varchar(36)" json:"user_id"`
	Email     string         `gorm:"size:191" json:"email"`
	IP        string         `gorm:"size:64" json:"ip"`
	UserAgent string         `json:"user_agent"`
	Message   string         `json:"message"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}
