package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"campus-connect/internal/domain"
	"campus-connect/internal/repository"
)

// ItemInput carries the fields accepted when reporting a lost item.
type ItemInput struct {
	ID          string
	Name        string
	Description string
	Location    string
	OwnerEmail  string
	ImagePath   string
}

// ItemUpdate is the allow-list of mutable lost item fields. Nil fields are
// left untouched.
type ItemUpdate struct {
	Name        *string
	Description *string
	Location    *string
	ImagePath   *string
	Found       *bool
}

// ItemService coordinates lost item operations.
type ItemService interface {
	Create(ctx context.Context, input ItemInput) (*domain.LostItem, error)
	Get(ctx context.Context, id string) (*domain.LostItem, error)
	List(ctx context.Context) ([]domain.LostItem, error)
	Update(ctx context.Context, id string, update ItemUpdate) (*domain.LostItem, error)
	// Delete removes an item; only its owner may do so.
	Delete(ctx context.Context, requester, id string) error
}

type itemService struct {
	items repository.ItemRepository
}

func NewItemService(items repository.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) Create(ctx context.Context, input ItemInput) (*domain.LostItem, error) {
	ownerEmail := strings.TrimSpace(input.OwnerEmail)
	if ownerEmail == "" {
		return nil, errors.New("owner email is required")
	}

	item := &domain.LostItem{
		ID:          strings.TrimSpace(input.ID),
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		OwnerEmail:  ownerEmail,
		ImagePath:   input.ImagePath,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, id string) (*domain.LostItem, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context) ([]domain.LostItem, error) {
	return s.items.List(ctx)
}

func (s *itemService) Update(ctx context.Context, id string, update ItemUpdate) (*domain.LostItem, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Location != nil {
		item.Location = *update.Location
	}
	if update.ImagePath != nil {
		item.ImagePath = *update.ImagePath
	}
	if update.Found != nil {
		item.Found = *update.Found
	}

	if err := s.items.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, requester, id string) error {
	// existence is reported before ownership
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if item.OwnerEmail != requester {
		return ErrForbidden
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
