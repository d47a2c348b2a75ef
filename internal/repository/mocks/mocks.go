// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Windi-Fikriyansyah/contadores/internal/models"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateWithAccountant(ctx context.Context, user *models.User, accountant *models.Accountant) error {
	args := m.Called(ctx, user, accountant)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) UpdateWithAccountant(ctx context.Context, user *models.User, accountant *models.Accountant) error {
	args := m.Called(ctx, user, accountant)
	return args.Error(0)
}

type AccountantRepository struct {
	mock.Mock
}

func (m *AccountantRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Accountant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Accountant), args.Error(1)
}

func (m *AccountantRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Accountant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Accountant), args.Error(1)
}

func (m *AccountantRepository) ListActive(ctx context.Context) ([]models.Accountant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Accountant), args.Error(1)
}

func (m *AccountantRepository) Filter(ctx context.Context, query string, tags []string) ([]models.Accountant, error) {
	args := m.Called(ctx, query, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Accountant), args.Error(1)
}

func (m *AccountantRepository) Save(ctx context.Context, accountant *models.Accountant) error {
	args := m.Called(ctx, accountant)
	return args.Error(0)
}

type RatingRepository struct {
	mock.Mock
}

func (m *RatingRepository) Submit(ctx context.Context, rating *models.Rating) (*models.Accountant, error) {
	args := m.Called(ctx, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Accountant), args.Error(1)
}

func (m *RatingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RatingView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RatingView), args.Error(1)
}

func (m *RatingRepository) ListByAccountant(ctx context.Context, accountantID uuid.UUID) ([]models.RatingView, error) {
	args := m.Called(ctx, accountantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RatingView), args.Error(1)
}

type ProposalRepository struct {
	mock.Mock
}

func (m *ProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *ProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *ProposalRepository) Respond(ctx context.Context, proposal *models.Proposal, status models.ProposalStatus, response string) error {
	args := m.Called(ctx, proposal, status, response)
	return args.Error(0)
}

func (m *ProposalRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.ProposalView, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProposalView), args.Error(1)
}

func (m *ProposalRepository) ListByAccountant(ctx context.Context, accountantID uuid.UUID) ([]models.ProposalView, error) {
	args := m.Called(ctx, accountantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProposalView), args.Error(1)
}

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) ListConversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, receiverID, senderID uuid.UUID) error {
	args := m.Called(ctx, receiverID, senderID)
	return args.Error(0)
}

func (m *MessageRepository) CountUnread(ctx context.Context, receiverID uuid.UUID) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

type AdminLogRepository struct {
	mock.Mock
}

func (m *AdminLogRepository) Append(ctx context.Context, action string, userID *uuid.UUID) error {
	args := m.Called(ctx, action, userID)
	return args.Error(0)
}

func (m *AdminLogRepository) List(ctx context.Context, limit int) ([]models.AdminLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminLog), args.Error(1)
}
