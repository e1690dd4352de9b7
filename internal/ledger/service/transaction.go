package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/idx"
)

type TransactionService struct {
	Store store.Store
}

// TransactionInput carries the writable transaction fields.
type TransactionInput struct {
	CategoryID  *string
	Description string
	AmountCents int64
	Kind        domain.EntryKind
	OccurredOn  time.Time
}

func (in *TransactionInput) validate() error {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return validationErr("description is required")
	}
	if in.AmountCents <= 0 {
		return validationErr("amount must be positive")
	}
	if !in.Kind.Valid() {
		return validationErr("kind must be income or expense")
	}
	if in.OccurredOn.IsZero() {
		return validationErr("occurred_on is required")
	}
	return nil
}

// checkCategory verifies the referenced category exists, belongs to the user,
// and matches the entry's direction.
func (s *TransactionService) checkCategory(ctx context.Context, userID string, categoryID *string, kind domain.EntryKind) error {
	if categoryID == nil {
		return nil
	}
	c, err := s.Store.Categories().GetCategory(ctx, userID, *categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return validationErr("unknown category")
		}
		return err
	}
	if c.Kind != kind {
		return validationErr("category kind %s does not match transaction kind %s", c.Kind, kind)
	}
	return nil
}

func (s *TransactionService) Create(ctx context.Context, userID string, in TransactionInput) (domain.Transaction, error) {
	if err := in.validate(); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.checkCategory(ctx, userID, in.CategoryID, in.Kind); err != nil {
		return domain.Transaction{}, err
	}

	now := time.Now().UTC()
	t := domain.Transaction{
		ID:          idx.New().String(),
		UserID:      userID,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		AmountCents: in.AmountCents,
		Kind:        in.Kind,
		OccurredOn:  in.OccurredOn.UTC().Truncate(24 * time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Transactions().CreateTransaction(ctx, t); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, id string) (domain.Transaction, error) {
	return s.Store.Transactions().GetTransaction(ctx, userID, id)
}

// List returns the user's transactions, newest first, optionally narrowed by
// month, kind, and category.
func (s *TransactionService) List(ctx context.Context, userID string, f store.TransactionFilter) ([]domain.Transaction, error) {
	if f.Month != "" {
		if err := domain.ValidateMonth(f.Month); err != nil {
			return nil, validationErr("%s", err)
		}
	}
	if f.Kind != "" && !f.Kind.Valid() {
		return nil, validationErr("kind must be income or expense")
	}
	return s.Store.Transactions().ListTransactions(ctx, userID, f)
}

func (s *TransactionService) Update(ctx context.Context, userID, id string, in TransactionInput) (domain.Transaction, error) {
	if err := in.validate(); err != nil {
		return domain.Transaction{}, err
	}
	if err := s.checkCategory(ctx, userID, in.CategoryID, in.Kind); err != nil {
		return domain.Transaction{}, err
	}

	t, err := s.Store.Transactions().GetTransaction(ctx, userID, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	t.CategoryID = in.CategoryID
	t.Description = in.Description
	t.AmountCents = in.AmountCents
	t.Kind = in.Kind
	t.OccurredOn = in.OccurredOn.UTC().Truncate(24 * time.Hour)
	t.UpdatedAt = time.Now().UTC()

	if err := s.Store.Transactions().UpdateTransaction(ctx, t); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	return s.Store.Transactions().DeleteTransaction(ctx, userID, id)
}

// MonthSummary aggregates a single month's activity.
type MonthSummary struct {
	Month        string
	IncomeCents  int64
	ExpenseCents int64
	NetCents     int64
}

// Summary totals the month's income and expenses.
func (s *TransactionService) Summary(ctx context.Context, userID, month string) (MonthSummary, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return MonthSummary{}, validationErr("%s", err)
	}

	txs, err := s.Store.Transactions().ListTransactions(ctx, userID, store.TransactionFilter{Month: month})
	if err != nil {
		return MonthSummary{}, err
	}

	sum := MonthSummary{Month: month}
	for _, t := range txs {
		switch t.Kind {
		case domain.KindIncome:
			sum.IncomeCents += t.AmountCents
		case domain.KindExpense:
			sum.ExpenseCents += t.AmountCents
		}
	}
	sum.NetCents = sum.IncomeCents - sum.ExpenseCents
	return sum, nil
}
