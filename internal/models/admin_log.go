package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminLog is append-only.
type AdminLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Action    string     `gorm:"type:varchar(200);not null" json:"action"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (l *AdminLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// All returns every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Accountant{},
		&Rating{},
		&Proposal{},
		&Message{},
		&AdminLog{},
	}
}
