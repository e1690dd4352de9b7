package domain

import "time"

type Category struct {
	ID        string
	UserID    string
	Name      string // unique per user
	Kind      EntryKind
	Color     string // hex string for the client, e.g. "#4caf50"
	CreatedAt time.Time
	UpdatedAt time.Time
}
