package domain

import "time"

// Notification tells a user that a finder reported one of their items.
type Notification struct {
	ID             string
	RecipientEmail string
	Message        string
	Timestamp      time.Time
	FinderEmail    string
}
