package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-connect/internal/auth"
	"campus-connect/internal/domain"
	"campus-connect/internal/repository"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	University  string
	Department  string
	BloodGroup  string
	PhoneNumber string
}

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Get(ctx context.Context, email string) (*domain.User, error)
	UpdateProfilePicture(ctx context.Context, email, path string) (*domain.User, error)
	// Delete removes the account addressed by email together with its lost
	// items and any notifications naming it as recipient or finder. Only the
	// account owner may delete it; requester is the authenticated email.
	Delete(ctx context.Context, requester, email string) error
}

type userService struct {
	users         repository.UserRepository
	items         repository.ItemRepository
	notifications repository.NotificationRepository
}

func NewUserService(users repository.UserRepository, items repository.ItemRepository, notifications repository.NotificationRepository) UserService {
	return &userService{
		users:         users,
		items:         items,
		notifications: notifications,
	}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if input.Password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		University:   input.University,
		Department:   input.Department,
		BloodGroup:   input.BloodGroup,
		PhoneNumber:  input.PhoneNumber,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) Get(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, email, path string) (*domain.User, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("profile picture path is required")
	}

	if err := s.users.UpdateProfilePicture(ctx, email, path); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, email)
}

func (s *userService) Delete(ctx context.Context, requester, email string) error {
	// existence is reported before ownership
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if requester != email {
		return ErrForbidden
	}

	if err := s.items.DeleteByOwner(ctx, email); err != nil {
		return fmt.Errorf("cascade items: %w", err)
	}
	if err := s.notifications.DeleteByRecipient(ctx, email); err != nil {
		return fmt.Errorf("cascade notifications: %w", err)
	}
	if err := s.notifications.DeleteByFinder(ctx, email); err != nil {
		return fmt.Errorf("cascade finder notifications: %w", err)
	}

	if err := s.users.Delete(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// sanitizeUser strips credential material before the user leaves the service
// layer, so no outbound path can serialize the password hash.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
