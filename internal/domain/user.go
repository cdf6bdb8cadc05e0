package domain

import "time"

// User represents a registered account, keyed by email.
type User struct {
	Email          string
	Username       string
	PasswordHash   string
	University     string
	Department     string
	BloodGroup     string
	PhoneNumber    string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
