package domain

import "time"

// EntryKind classifies money movement. It doubles as the category kind so a
// category can only ever hold transactions of its own direction.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

func (k EntryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a single dated income or expense entry. Amounts are integer
// cents, always positive; the kind carries the sign.
type Transaction struct {
	ID          string
	UserID      string
	CategoryID  *string // nil when uncategorised or the category was deleted
	Description string
	AmountCents int64
	Kind        EntryKind
	OccurredOn  time.Time // date precision, stored at UTC midnight
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
