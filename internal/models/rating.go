package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRatingValue = 1.0
	MaxRatingValue = 5.0
)

// Rating is unique per (accountant, user).
type Rating struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_accountant_user" json:"accountant_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_accountant_user;index" json:"user_id"`
	Value        float64   `gorm:"not null" json:"value"`
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// AverageScore is sum/count, or fallback when there is nothing to average.
func AverageScore(sum float64, count int64, fallback float64) float64 {
	if count <= 0 {
		return fallback
	}
	return sum / float64(count)
}
