package engagement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/cache"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/realtime"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/admin"
)

// RecentWindow marks items sent or written within this period as recent.
const RecentWindow = 30 * 24 * time.Hour

// RatingItem is one entry of "my ratings".
type RatingItem struct {
	models.RatingView
	Recent bool `json:"recent"`
}

// ProposalItem is one entry of a proposal list.
type ProposalItem struct {
	models.ProposalView
	Recent bool `json:"recent"`
}

// Received is the accountant's inbox.
type Received struct {
	Accountant *models.Accountant `json:"accountant"`
	Proposals  []ProposalItem     `json:"proposals"`
}

// Service covers proposals and ratings.
type Service interface {
	SubmitProposal(ctx context.Context, clientID, accountantID uuid.UUID, message string) (*models.Proposal, error)
	RespondToProposal(ctx context.Context, userID, proposalID uuid.UUID, status, response string) (*models.Proposal, error)
	SubmitRating(ctx context.Context, userID, accountantID uuid.UUID, value float64, comment string) (*models.Accountant, error)
	ListMyRatings(ctx context.Context, userID uuid.UUID) ([]RatingItem, error)
	ListMyProposals(ctx context.Context, userID uuid.UUID) ([]ProposalItem, error)
	ListReceivedProposals(ctx context.Context, userID uuid.UUID) (*Received, error)
}

type service struct {
	users       repository.UserRepository
	accountants repository.AccountantRepository
	proposals   repository.ProposalRepository
	ratings     repository.RatingRepository
	notifier    realtime.Notifier
	cache       *cache.Client
	audit       admin.Service
	now         func() time.Time
}

func NewService(
	users repository.UserRepository,
	accountants repository.AccountantRepository,
	proposals repository.ProposalRepository,
	ratings repository.RatingRepository,
	notifier realtime.Notifier,
	c *cache.Client,
	audit admin.Service,
) Service {
	if notifier == nil {
		notifier = realtime.NopNotifier{}
	}
	if audit == nil {
		audit = admin.NewService(nil)
	}
	return &service{
		users:       users,
		accountants: accountants,
		proposals:   proposals,
		ratings:     ratings,
		notifier:    notifier,
		cache:       c,
		audit:       audit,
		now:         time.Now,
	}
}

func (s *service) SubmitProposal(ctx context.Context, clientID, accountantID uuid.UUID, message string) (*models.Proposal, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperr.Validation("Mensagem é obrigatória!")
	}

	acc, err := s.findAccountant(ctx, accountantID)
	if err != nil {
		return nil, err
	}

	p := &models.Proposal{
		AccountantID: acc.ID,
		ClientID:     clientID,
		Message:      message,
		Status:       models.ProposalPending,
	}
	if err := s.proposals.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	s.notifier.Notify(ctx, acc.UserID, realtime.Event{Type: realtime.EventNewProposal, Data: p})
	return p, nil
}

func (s *service) RespondToProposal(ctx context.Context, userID, proposalID uuid.UUID, status, response string) (*models.Proposal, error) {
	acc, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, ok := models.ParseResponseStatus(status)
	if !ok {
		return nil, apperr.Validation("Status inválido!")
	}

	p, err := s.proposals.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	if p.AccountantID != acc.ID {
		return nil, apperr.ErrProposalNotOwned
	}
	if !p.CanTransitionTo(next) {
		return nil, apperr.ErrInvalidTransition
	}

	if err := s.proposals.Respond(ctx, p, next, strings.TrimSpace(response)); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, admin.ActionProposalAnswer, userID)
	s.notifier.Notify(ctx, p.ClientID, realtime.Event{Type: realtime.EventProposalAnswered, Data: p})
	return p, nil
}

func (s *service) SubmitRating(ctx context.Context, userID, accountantID uuid.UUID, value float64, comment string) (*models.Accountant, error) {
	if value < models.MinRatingValue || value > models.MaxRatingValue {
		return nil, apperr.Validation("A nota deve estar entre 1 e 5!")
	}

	acc, err := s.ratings.Submit(ctx, &models.Rating{
		AccountantID: accountantID,
		UserID:       userID,
		Value:        value,
		Comment:      strings.TrimSpace(comment),
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.KeyActiveAccountants)
	s.audit.Record(ctx, admin.ActionRatingSubmitted, userID)
	s.notifier.Notify(ctx, acc.UserID, realtime.Event{Type: realtime.EventNewRating, Data: map[string]interface{}{
		"score":        acc.Score,
		"rating_count": acc.RatingCount,
	}})
	return acc, nil
}

func (s *service) ListMyRatings(ctx context.Context, userID uuid.UUID) ([]RatingItem, error) {
	views, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	cutoff := s.now().Add(-RecentWindow)
	out := make([]RatingItem, 0, len(views))
	for _, v := range views {
		out = append(out, RatingItem{RatingView: v, Recent: v.CreatedAt.After(cutoff)})
	}
	return out, nil
}

func (s *service) ListMyProposals(ctx context.Context, userID uuid.UUID) ([]ProposalItem, error) {
	views, err := s.proposals.ListByClient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return s.proposalItems(views), nil
}

func (s *service) ListReceivedProposals(ctx context.Context, userID uuid.UUID) (*Received, error) {
	acc, err := s.ownProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	views, err := s.proposals.ListByAccountant(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return &Received{Accountant: acc, Proposals: s.proposalItems(views)}, nil
}

func (s *service) proposalItems(views []models.ProposalView) []ProposalItem {
	cutoff := s.now().Add(-RecentWindow)
	out := make([]ProposalItem, 0, len(views))
	for _, v := range views {
		out = append(out, ProposalItem{ProposalView: v, Recent: v.SentAt.After(cutoff)})
	}
	return out
}

// ownProfile resolves the accountant profile of userID, rejecting other roles.
func (s *service) ownProfile(ctx context.Context, userID uuid.UUID) (*models.Accountant, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !u.IsAccountant() {
		return nil, apperr.ErrAccountantOnly
	}
	acc, err := s.accountants.FindByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return acc, nil
}

func (s *service) findAccountant(ctx context.Context, id uuid.UUID) (*models.Accountant, error) {
	acc, err := s.accountants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrAccountantNotFound
		}
		return nil, fmt.Errorf("find accountant: %w", err)
	}
	return acc, nil
}
