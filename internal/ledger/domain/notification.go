package domain

import "time"

// NotificationKind is a closed set; handlers and the worker switch on it
// exhaustively instead of comparing raw strings.
type NotificationKind string

const (
	NotifyReserveDue     NotificationKind = "reserve_due"
	NotifyInstallmentDue NotificationKind = "installment_due"
	NotifyGoalReached    NotificationKind = "goal_reached"
	NotifySystem         NotificationKind = "system"
)

func (k NotificationKind) Valid() bool {
	switch k {
	case NotifyReserveDue, NotifyInstallmentDue, NotifyGoalReached, NotifySystem:
		return true
	}
	return false
}

// Notification is a user-facing message. DedupKey, when set, is unique per
// user: re-inserting the same key is a silent no-op, which is what lets the
// reserve worker run repeatedly without spamming.
type Notification struct {
	ID        string
	UserID    string
	Kind      NotificationKind
	Title     string
	Body      string
	DedupKey  *string
	Read      bool
	CreatedAt time.Time
}
