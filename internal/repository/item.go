package repository

import (
	"context"

	"campus-connect/internal/domain"
)

// ItemRepository exposes persistence operations for LostItem records.
type ItemRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, item *domain.LostItem) error
	Get(ctx context.Context, id string) (*domain.LostItem, error)
	List(ctx context.Context) ([]domain.LostItem, error)
	Update(ctx context.Context, item *domain.LostItem) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerEmail string) error
}
