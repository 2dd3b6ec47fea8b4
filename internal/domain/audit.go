package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEvent records one admin mutation. Append-only.
type AuditEvent struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ActorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action   string         `gorm:"type:varchar(40);not null;index" json:"action"`
	EntityID uuid.UUID      `gorm:"type:uuid;index" json:"entity_id"`
	Payload  datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (AuditEvent) TableName() string { return "audit_event" }

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
