package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/cache"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository"
)

// Profile is the public accountant page.
type Profile struct {
	Accountant *models.Accountant   `json:"accountant"`
	Ratings    []models.RatingView `json:"ratings"`
}

// Service answers the public browsing queries.
type Service interface {
	ListActive(ctx context.Context) ([]models.Accountant, error)
	Filter(ctx context.Context, query string, tags []string) ([]models.Accountant, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
}

type service struct {
	accountants repository.AccountantRepository
	ratings     repository.RatingRepository
	cache       *cache.Client
	ttl         time.Duration
}

func NewService(accountants repository.AccountantRepository, ratings repository.RatingRepository, c *cache.Client, ttl time.Duration) Service {
	return &service{accountants: accountants, ratings: ratings, cache: c, ttl: ttl}
}

func (s *service) ListActive(ctx context.Context) ([]models.Accountant, error) {
	var cached []models.Accountant
	if s.cache.GetJSON(ctx, cache.KeyActiveAccountants, &cached) {
		return cached, nil
	}

	out, err := s.accountants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accountants: %w", err)
	}
	out = nonNil(out)

	if s.ttl > 0 {
		_ = s.cache.SetJSON(ctx, cache.KeyActiveAccountants, out, s.ttl)
	}
	return out, nil
}

func (s *service) Filter(ctx context.Context, query string, tags []string) ([]models.Accountant, error) {
	out, err := s.accountants.Filter(ctx, query, tags)
	if err != nil {
		return nil, fmt.Errorf("filter accountants: %w", err)
	}
	return nonNil(out), nil
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	acc, err := s.accountants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrAccountantNotFound
		}
		return nil, fmt.Errorf("find accountant: %w", err)
	}

	ratings, err := s.ratings.ListByAccountant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	if ratings == nil {
		ratings = []models.RatingView{}
	}
	return &Profile{Accountant: acc, Ratings: ratings}, nil
}

func nonNil(in []models.Accountant) []models.Accountant {
	if in == nil {
		return []models.Accountant{}
	}
	for i := range in {
		if in[i].Tags == nil {
			in[i].Tags = []string{}
		}
	}
	return in
}
