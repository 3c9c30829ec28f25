package domain

import "time"

// AccountRegisteredEvent represents the payload for account.registered messages.
type AccountRegisteredEvent struct {
	EventID      string
	AccountID    string
	UserName     string
	Email        string
	Status       string
	RegisteredAt time.Time
	Metadata     map[string]any
}

// PasswordChangedEvent represents the payload for account.password.changed messages.
type PasswordChangedEvent struct {
	EventID   string
	AccountID string
	ChangedAt time.Time
	ChangedBy string
	Source    string
	Metadata  map[string]any
}

// PasswordResetRequestedEvent represents the payload for
// account.password.reset_requested messages. Destination is masked before
// it reaches the bus.
type PasswordResetRequestedEvent struct {
	EventID           string
	AccountID         string
	RequestedAt       time.Time
	MaskedDestination string
	ExpiresAt         time.Time
	Metadata          map[string]any
}
