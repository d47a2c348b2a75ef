package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

// AccountantRepository defines persistence operations for accountant profiles.
type AccountantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Accountant, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Accountant, error)
	ListActive(ctx context.Context) ([]models.Accountant, error)
	Filter(ctx context.Context, query string, tags []string) ([]models.Accountant, error)
	Save(ctx context.Context, accountant *models.Accountant) error
}

type accountantRepository struct {
	db *gorm.DB
}

func NewAccountantRepository(db *gorm.DB) AccountantRepository {
	return &accountantRepository{db: db}
}

func (r *accountantRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Accountant, error) {
	var a models.Accountant
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountantRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Accountant, error) {
	var a models.Accountant
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountantRepository) ListActive(ctx context.Context) ([]models.Accountant, error) {
	var out []models.Accountant
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// Filter matches query against specialty, name and description (any of them) and
// requires every tag to appear as a substring of the serialized tag list.
func (r *accountantRepository) Filter(ctx context.Context, query string, tags []string) ([]models.Accountant, error) {
	q := r.db.WithContext(ctx).Model(&models.Accountant{}).Where("active = ?", true)

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + query + "%"
		q = q.Where("specialty ILIKE ? OR name ILIKE ? OR description ILIKE ?", like, like, like)
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		q = q.Where("CAST(tags AS TEXT) ILIKE ?", "%"+tag+"%")
	}

	var out []models.Accountant
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *accountantRepository) Save(ctx context.Context, accountant *models.Accountant) error {
	return r.db.WithContext(ctx).Save(accountant).Error
}
