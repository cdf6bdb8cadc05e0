package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"campus-connect/internal/domain"
	"campus-connect/internal/repository"
)

// NotificationInput carries the fields accepted when a finder reports a match.
type NotificationInput struct {
	RecipientEmail string
	Message        string
	FinderEmail    string
	Timestamp      *time.Time
}

// NotificationService coordinates notification operations. Notifications are
// create and read only.
type NotificationService interface {
	Create(ctx context.Context, input NotificationInput) (*domain.Notification, error)
	ListForRecipient(ctx context.Context, recipientEmail string) ([]domain.Notification, error)
}

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) Create(ctx context.Context, input NotificationInput) (*domain.Notification, error) {
	recipient := strings.TrimSpace(input.RecipientEmail)
	if recipient == "" {
		return nil, errors.New("recipient email is required")
	}

	timestamp := time.Now().UTC()
	if input.Timestamp != nil {
		timestamp = input.Timestamp.UTC()
	}

	notification := &domain.Notification{
		ID:             uuid.NewString(),
		RecipientEmail: recipient,
		Message:        input.Message,
		Timestamp:      timestamp,
		FinderEmail:    strings.TrimSpace(input.FinderEmail),
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) ListForRecipient(ctx context.Context, recipientEmail string) ([]domain.Notification, error) {
	return s.notifications.ListByRecipient(ctx, recipientEmail)
}
