package service

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestTransactionCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &TransactionService{Store: st}
	cats := &CategoryService{Store: st}

	groceries, err := cats.Create(ctx, userID, CategoryInput{Name: "Groceries", Kind: domain.KindExpense, Color: "#4caf50"})
	require.NoError(t, err)

	tx, err := svc.Create(ctx, userID, TransactionInput{
		CategoryID:  &groceries.ID,
		Description: "Weekly shop",
		AmountCents: 8_750,
		Kind:        domain.KindExpense,
		OccurredOn:  mustDate(t, "2026-01-15"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, tx.ID)

	t.Run("get round-trips", func(t *testing.T) {
		got, err := svc.Get(ctx, userID, tx.ID)
		require.NoError(t, err)
		require.Equal(t, tx.ID, got.ID)
		require.Equal(t, int64(8_750), got.AmountCents)
		require.NotNil(t, got.CategoryID)
		require.Equal(t, groceries.ID, *got.CategoryID)
	})

	t.Run("update rewrites the row", func(t *testing.T) {
		got, err := svc.Update(ctx, userID, tx.ID, TransactionInput{
			CategoryID:  &groceries.ID,
			Description: "Weekly shop + wine",
			AmountCents: 10_250,
			Kind:        domain.KindExpense,
			OccurredOn:  mustDate(t, "2026-01-15"),
		})
		require.NoError(t, err)
		require.Equal(t, int64(10_250), got.AmountCents)
	})

	t.Run("category kind mismatch is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, TransactionInput{
			CategoryID:  &groceries.ID,
			Description: "Salary",
			AmountCents: 500_000,
			Kind:        domain.KindIncome,
			OccurredOn:  mustDate(t, "2026-01-31"),
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("deleting the category uncategorises the transaction", func(t *testing.T) {
		require.NoError(t, cats.Delete(ctx, userID, groceries.ID))

		got, err := svc.Get(ctx, userID, tx.ID)
		require.NoError(t, err)
		require.Nil(t, got.CategoryID)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, userID, tx.ID))

		_, err := svc.Get(ctx, userID, tx.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestTransactionFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &TransactionService{Store: st}

	seed := []struct {
		desc   string
		amount int64
		kind   domain.EntryKind
		date   string
	}{
		{"Salary", 500_000, domain.KindIncome, "2026-01-25"},
		{"Rent", 180_000, domain.KindExpense, "2026-01-01"},
		{"Rent", 180_000, domain.KindExpense, "2026-02-01"},
		{"Concert", 12_000, domain.KindExpense, "2026-02-14"},
	}
	for _, s := range seed {
		_, err := svc.Create(ctx, userID, TransactionInput{
			Description: s.desc,
			AmountCents: s.amount,
			Kind:        s.kind,
			OccurredOn:  mustDate(t, s.date),
		})
		require.NoError(t, err)
	}

	t.Run("month filter", func(t *testing.T) {
		txs, err := svc.List(ctx, userID, store.TransactionFilter{Month: "2026-02"})
		require.NoError(t, err)
		require.Len(t, txs, 2)
	})

	t.Run("kind filter", func(t *testing.T) {
		txs, err := svc.List(ctx, userID, store.TransactionFilter{Kind: domain.KindIncome})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		require.Equal(t, "Salary", txs[0].Description)
	})

	t.Run("filters combine", func(t *testing.T) {
		txs, err := svc.List(ctx, userID, store.TransactionFilter{Month: "2026-01", Kind: domain.KindExpense})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		require.Equal(t, "Rent", txs[0].Description)
	})

	t.Run("newest first", func(t *testing.T) {
		txs, err := svc.List(ctx, userID, store.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 4)
		require.Equal(t, "Concert", txs[0].Description)
	})

	t.Run("bad month is a validation error", func(t *testing.T) {
		_, err := svc.List(ctx, userID, store.TransactionFilter{Month: "02-2026"})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("monthly summary", func(t *testing.T) {
		sum, err := svc.Summary(ctx, userID, "2026-01")
		require.NoError(t, err)
		require.Equal(t, int64(500_000), sum.IncomeCents)
		require.Equal(t, int64(180_000), sum.ExpenseCents)
		require.Equal(t, int64(320_000), sum.NetCents)
	})

	t.Run("users only see their own rows", func(t *testing.T) {
		otherID := newTestUser(t, st)
		txs, err := svc.List(ctx, otherID, store.TransactionFilter{})
		require.NoError(t, err)
		require.Empty(t, txs)
	})
}

func TestCategoryUniqueness(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &CategoryService{Store: st}

	_, err := svc.Create(ctx, userID, CategoryInput{Name: "Bills", Kind: domain.KindExpense})
	require.NoError(t, err)

	t.Run("duplicate name for the same user", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, CategoryInput{Name: "Bills", Kind: domain.KindExpense})
		require.ErrorIs(t, err, ErrNameTaken)
	})

	t.Run("same name for a different user is fine", func(t *testing.T) {
		otherID := newTestUser(t, st)
		_, err := svc.Create(ctx, otherID, CategoryInput{Name: "Bills", Kind: domain.KindExpense})
		require.NoError(t, err)
	})
}
