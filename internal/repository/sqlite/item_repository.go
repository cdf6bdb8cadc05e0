package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-connect/internal/domain"
	"campus-connect/internal/repository"
)

const createItemsTable = `
CREATE TABLE IF NOT EXISTS lost_items (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	owner_email TEXT NOT NULL,
	image_path TEXT NOT NULL DEFAULT '',
	found INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create lost_items table: %w", err)
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.LostItem) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO lost_items (id, name, description, location, owner_email, image_path, found, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		item.Description,
		item.Location,
		item.OwnerEmail,
		item.ImagePath,
		item.Found,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("insert lost item: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert lost item: %w", err)
	}
	return nil
}

func (r *ItemRepository) Get(ctx context.Context, id string) (*domain.LostItem, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description, location, owner_email, image_path, found, created_at, updated_at
FROM lost_items
WHERE id = ?`,
		id,
	)
	return scanItem(row)
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.LostItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, location, owner_email, image_path, found, created_at, updated_at
FROM lost_items
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list lost items: %w", err)
	}
	defer rows.Close()

	var items []domain.LostItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lost items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.LostItem) error {
	item.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE lost_items
SET name = ?, description = ?, location = ?, image_path = ?, found = ?, updated_at = ?
WHERE id = ?`,
		item.Name,
		item.Description,
		item.Location,
		item.ImagePath,
		item.Found,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update lost item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lost item rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lost_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lost item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lost item rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteByOwner(ctx context.Context, ownerEmail string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lost_items WHERE owner_email = ?`, ownerEmail); err != nil {
		return fmt.Errorf("delete lost items by owner: %w", err)
	}
	return nil
}

func scanItem(row interface {
	Scan(dest ...any) error
}) (*domain.LostItem, error) {
	var item domain.LostItem
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Location,
		&item.OwnerEmail,
		&item.ImagePath,
		&item.Found,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan lost item: %w", err)
	}
	return &item, nil
}
