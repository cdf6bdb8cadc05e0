package repository

import (
	"context"

	"campus-connect/internal/domain"
)

// NotificationRepository manages notification records. Notifications are
// create/read only; deletes happen only as part of the account cascade.
type NotificationRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, notification *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientEmail string) ([]domain.Notification, error)
	DeleteByRecipient(ctx context.Context, recipientEmail string) error
	DeleteByFinder(ctx context.Context, finderEmail string) error
}
