package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	CreateWithAccountant(ctx context.Context, user *models.User, accountant *models.Accountant) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateWithAccountant(ctx context.Context, user *models.User, accountant *models.Accountant) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithAccountant inserts the user and, when accountant is not nil, its profile
// in the same transaction.
func (r *userRepository) CreateWithAccountant(ctx context.Context, user *models.User, accountant *models.Accountant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if accountant == nil {
			return nil
		}
		accountant.UserID = user.ID
		return tx.Create(accountant).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

// UpdateWithAccountant saves the user and the mirrored profile atomically.
func (r *userRepository) UpdateWithAccountant(ctx context.Context, user *models.User, accountant *models.Accountant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if accountant == nil {
			return nil
		}
		return tx.Save(accountant).Error
	})
}
