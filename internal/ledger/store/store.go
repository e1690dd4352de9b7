// Package store defines the data access contracts. Concrete drivers live
// under drivers/; sqlite is the only one today but the split keeps the
// service layer honest about what it needs.
package store

import (
	"context"
	"errors"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, exposing one sub-repository per
// aggregate. All row access is scoped by user ID at this layer so a handler
// can never reach another user's data by construction.
type Store interface {
	Users() Users
	Categories() Categories
	Transactions() Transactions
	Goals() Goals
	Installments() Installments
	Notifications() Notifications

	ApplyMigrations() error

	// WithTx executes fn within a transaction, committing on nil and rolling
	// back on error. Use it for multi-step writes that must be atomic (e.g.
	// paying an installment).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the store.
type Tx interface {
	Users() Users
	Categories() Categories
	Transactions() Transactions
	Goals() Goals
	Installments() Installments
	Notifications() Notifications
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists on a duplicate
	// email.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by the lowercased unique email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// TouchLastLogin stamps last_login with the current time.
	TouchLastLogin(ctx context.Context, userID string) error

	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// DeleteUser cascades to all owned rows (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// ListUserIDs returns every user id; the reserve worker iterates it.
	ListUserIDs(ctx context.Context) ([]string, error)
}

type Categories interface {
	// CreateCategory returns ErrAlreadyExists when the (user, name) pair is
	// taken.
	CreateCategory(ctx context.Context, c domain.Category) error
	GetCategory(ctx context.Context, userID, id string) (domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) error

	// DeleteCategory nulls the category on referencing transactions and
	// installment plans (per schema) rather than deleting them.
	DeleteCategory(ctx context.Context, userID, id string) error
}

// TransactionFilter narrows ListTransactions. Zero values mean "any".
type TransactionFilter struct {
	Month      string // "YYYY-MM"
	Kind       domain.EntryKind
	CategoryID string
}

type Transactions interface {
	CreateTransaction(ctx context.Context, t domain.Transaction) error
	GetTransaction(ctx context.Context, userID, id string) (domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, f TransactionFilter) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, t domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
}

type Goals interface {
	CreateGoal(ctx context.Context, g domain.Goal) error
	GetGoal(ctx context.Context, userID, id string) (domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	ListActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, g domain.Goal) error
	DeleteGoal(ctx context.Context, userID, id string) error

	// UpsertReserve inserts the month row or updates its amounts in place.
	// One row per (goal, month).
	UpsertReserve(ctx context.Context, r domain.MonthlyReserve) error

	// EnsureReserve inserts the month row only if absent; existing rows are
	// left untouched. Returns true when a row was inserted.
	EnsureReserve(ctx context.Context, r domain.MonthlyReserve) (bool, error)

	// GetReserve returns the stored row for a goal's month.
	GetReserve(ctx context.Context, goalID, month string) (domain.MonthlyReserve, error)

	ListReserves(ctx context.Context, goalID string) ([]domain.MonthlyReserve, error)

	// TotalSaved sums saved_cents across all reserve rows for the goal.
	TotalSaved(ctx context.Context, goalID string) (int64, error)
}

type Installments interface {
	CreateInstallmentPlan(ctx context.Context, p domain.InstallmentPlan) error
	GetInstallmentPlan(ctx context.Context, userID, id string) (domain.InstallmentPlan, error)
	ListInstallmentPlans(ctx context.Context, userID string) ([]domain.InstallmentPlan, error)

	// SetMonthsPaid bumps months_paid; the caller pairs it with the expense
	// transaction insert inside WithTx.
	SetMonthsPaid(ctx context.Context, userID, id string, monthsPaid int) error

	DeleteInstallmentPlan(ctx context.Context, userID, id string) error
}

type Notifications interface {
	// CreateNotification inserts; a duplicate (user, dedup_key) is a silent
	// no-op and returns false. Notifications without a dedup key always
	// insert.
	CreateNotification(ctx context.Context, n domain.Notification) (bool, error)

	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, userID, id string) error
}
