package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	Submit(ctx context.Context, rating *models.Rating) (*models.Accountant, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RatingView, error)
	ListByAccountant(ctx context.Context, accountantID uuid.UUID) ([]models.RatingView, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

type ratingAggregate struct {
	Total float64
	Count int64
}

// Submit inserts the rating and rewrites the accountant's score and rating_count.
// The accountant row stays locked until commit so concurrent raters serialize.
func (r *ratingRepository) Submit(ctx context.Context, rating *models.Rating) (*models.Accountant, error) {
	var acc models.Accountant

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&acc, "id = ?", rating.AccountantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrAccountantNotFound
			}
			return err
		}

		var existing []models.Rating
		if err := tx.Where("accountant_id = ? AND user_id = ?", rating.AccountantID, rating.UserID).
			Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperr.ErrAlreadyRated
		}

		if err := tx.Create(rating).Error; err != nil {
			return err
		}

		var agg ratingAggregate
		if err := tx.Model(&models.Rating{}).
			Select("COALESCE(SUM(value), 0) AS total, COUNT(*) AS count").
			Where("accountant_id = ?", rating.AccountantID).
			Scan(&agg).Error; err != nil {
			return err
		}

		acc.Score = models.AverageScore(agg.Total, agg.Count, rating.Value)
		acc.RatingCount = agg.Count

		return tx.Model(&models.Accountant{}).
			Where("id = ?", acc.ID).
			Updates(map[string]interface{}{
				"score":        acc.Score,
				"rating_count": acc.RatingCount,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RatingView, error) {
	var out []models.RatingView
	err := r.viewQuery(ctx).
		Where("ratings.user_id = ?", userID).
		Order("ratings.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *ratingRepository) ListByAccountant(ctx context.Context, accountantID uuid.UUID) ([]models.RatingView, error) {
	var out []models.RatingView
	err := r.viewQuery(ctx).
		Where("ratings.accountant_id = ?", accountantID).
		Order("ratings.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *ratingRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("ratings").
		Select(`ratings.*,
			accountants.name AS accountant_name,
			accountants.specialty AS accountant_specialty,
			accountants.photo AS accountant_photo,
			users.name AS rater_name,
			users.photo AS rater_photo`).
		Joins("JOIN accountants ON accountants.id = ratings.accountant_id").
		Joins("JOIN users ON users.id = ratings.user_id")
}
