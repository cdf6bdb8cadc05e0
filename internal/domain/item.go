package domain

import "time"

// LostItem represents an item reported lost by a user.
type LostItem struct {
	ID          string
	Name        string
	Description string
	Location    string
	OwnerEmail  string
	ImagePath   string
	Found       bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
