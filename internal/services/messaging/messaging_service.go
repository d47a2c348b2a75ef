package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/realtime"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository"
)

// Service covers direct messages between two users.
type Service interface {
	Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*models.Message, error)
	Conversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	notifier realtime.Notifier
}

func NewService(users repository.UserRepository, messages repository.MessageRepository, notifier realtime.Notifier) Service {
	if notifier == nil {
		notifier = realtime.NopNotifier{}
	}
	return &service{users: users, messages: messages, notifier: notifier}
}

func (s *service) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("Mensagem é obrigatória!")
	}
	if senderID == receiverID {
		return nil, apperr.Validation("Você não pode enviar mensagem para si mesmo!")
	}

	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("find receiver: %w", err)
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	ev := realtime.Event{Type: realtime.EventNewMessage, Data: msg}
	s.notifier.Notify(ctx, receiverID, ev)
	s.notifier.Notify(ctx, senderID, ev)
	return msg, nil
}

// Conversation returns the thread oldest first and marks what userID received as read.
func (s *service) Conversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error) {
	if err := s.messages.MarkRead(ctx, userID, otherID); err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	out, err := s.messages.ListConversation(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if out == nil {
		out = []models.Message{}
	}
	return out, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.messages.CountUnread(ctx, userID)
}
