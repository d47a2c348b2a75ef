package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

// AdminLogRepository appends and lists audit entries. There is no update or delete.
type AdminLogRepository interface {
	Append(ctx context.Context, action string, userID *uuid.UUID) error
	List(ctx context.Context, limit int) ([]models.AdminLog, error)
}

type adminLogRepository struct {
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &adminLogRepository{db: db}
}

func (r *adminLogRepository) Append(ctx context.Context, action string, userID *uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&models.AdminLog{Action: action, UserID: userID}).Error
}

func (r *adminLogRepository) List(ctx context.Context, limit int) ([]models.AdminLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []models.AdminLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}
