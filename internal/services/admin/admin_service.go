package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository"
)

// Actions written to the admin log.
const (
	ActionRegister        = "user_registered"
	ActionLogin           = "user_login"
	ActionGoogleLogin     = "user_login_google"
	ActionProfileUpdate   = "profile_updated"
	ActionProposalAnswer  = "proposal_answered"
	ActionRatingSubmitted = "rating_submitted"
)

// Service exposes the audit trail.
type Service interface {
	Record(ctx context.Context, action string, userID uuid.UUID)
	List(ctx context.Context, limit int) ([]models.AdminLog, error)
}

type service struct {
	repo repository.AdminLogRepository
}

func NewService(repo repository.AdminLogRepository) Service {
	return &service{repo: repo}
}

// Record appends an entry. A failed write is logged and never fails the caller.
func (s *service) Record(ctx context.Context, action string, userID uuid.UUID) {
	if s == nil || s.repo == nil {
		return
	}
	var uid *uuid.UUID
	if userID != uuid.Nil {
		uid = &userID
	}
	if err := s.repo.Append(ctx, action, uid); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("admin log append failed")
	}
}

func (s *service) List(ctx context.Context, limit int) ([]models.AdminLog, error) {
	return s.repo.List(ctx, limit)
}
