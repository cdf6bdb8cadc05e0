package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"campus-connect/internal/domain"
	"campus-connect/internal/repository"
)

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	recipient_email TEXT NOT NULL,
	message TEXT NOT NULL DEFAULT '',
	timestamp DATETIME NOT NULL,
	finder_email TEXT NOT NULL DEFAULT ''
);
`

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNotificationsTable); err != nil {
		return fmt.Errorf("create notifications table: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO notifications (id, recipient_email, message, timestamp, finder_email)
VALUES (?, ?, ?, ?, ?)`,
		notification.ID,
		notification.RecipientEmail,
		notification.Message,
		notification.Timestamp,
		notification.FinderEmail,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("insert notification: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientEmail string) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, recipient_email, message, timestamp, finder_email
FROM notifications
WHERE recipient_email = ?
ORDER BY timestamp DESC`,
		recipientEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientEmail,
			&n.Message,
			&n.Timestamp,
			&n.FinderEmail,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) DeleteByRecipient(ctx context.Context, recipientEmail string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE recipient_email = ?`, recipientEmail); err != nil {
		return fmt.Errorf("delete notifications by recipient: %w", err)
	}
	return nil
}

func (r *NotificationRepository) DeleteByFinder(ctx context.Context, finderEmail string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE finder_email = ?`, finderEmail); err != nil {
		return fmt.Errorf("delete notifications by finder: %w", err)
	}
	return nil
}
