package entities

import "time"

type AuditEventType string

const (
	AuditEventCreate AuditEventType = "create"
	AuditEventUpdate AuditEventType = "update"
	AuditEventDelete AuditEventType = "delete"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records a mutation of a catalog entity.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g. "genre_create", "bookinstance_delete"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  Kind           `gorm:"size:50" json:"entity_type"`
	EntityID    string         `gorm:"index;size:36" json:"entity_id,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ip_address,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

// URL links to the audited entity. Deleted entities have no page.
func (e AuditEvent) URL() string {
	if e.EventType == AuditEventDelete || e.EntityID == "" {
		return ""
	}
	return URL(e.EntityType, e.EntityID)
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
