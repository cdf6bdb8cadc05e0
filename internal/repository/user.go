package repository

import (
	"context"

	"campus-connect/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfilePicture(ctx context.Context, email, path string) error
	Delete(ctx context.Context, email string) error
}
