package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

// ProposalRepository defines persistence operations for proposals.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	Respond(ctx context.Context, proposal *models.Proposal, status models.ProposalStatus, response string) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.ProposalView, error)
	ListByAccountant(ctx context.Context, accountantID uuid.UUID) ([]models.ProposalView, error)
}

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var p models.Proposal
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Respond moves a pending proposal to status. The pending check is part of the
// UPDATE so two answers racing cannot both win.
func (r *proposalRepository) Respond(ctx context.Context, proposal *models.Proposal, status models.ProposalStatus, response string) error {
	res := r.db.WithContext(ctx).Model(&models.Proposal{}).
		Where("id = ? AND status = ?", proposal.ID, models.ProposalPending).
		Updates(map[string]interface{}{
			"status":   status,
			"response": response,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrInvalidTransition
	}
	proposal.Status = status
	proposal.Response = response
	return nil
}

func (r *proposalRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.ProposalView, error) {
	var out []models.ProposalView
	err := r.viewQuery(ctx).
		Where("proposals.client_id = ?", clientID).
		Order("proposals.sent_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *proposalRepository) ListByAccountant(ctx context.Context, accountantID uuid.UUID) ([]models.ProposalView, error) {
	var out []models.ProposalView
	err := r.viewQuery(ctx).
		Where("proposals.accountant_id = ?", accountantID).
		Order("proposals.sent_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *proposalRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("proposals").
		Select(`proposals.*,
			accountants.name AS accountant_name,
			accountants.photo AS accountant_photo,
			users.name AS client_name,
			users.email AS client_email,
			users.photo AS client_photo`).
		Joins("JOIN accountants ON accountants.id = proposals.accountant_id").
		Joins("JOIN users ON users.id = proposals.client_id")
}
