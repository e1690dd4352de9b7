package service

import (
	"context"
	"testing"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/stretchr/testify/require"
)

func TestInstallmentPay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &InstallmentService{Store: st}

	// 100.00 over 3 months: 33.34 + 33.33 + 33.33.
	p, err := svc.Create(ctx, userID, InstallmentInput{
		Description:   "Washing machine",
		TotalCents:    10_000,
		MonthsTotal:   3,
		FirstDueMonth: "2026-01",
	})
	require.NoError(t, err)
	require.Zero(t, p.MonthsPaid)

	t.Run("first payment carries the rounding remainder", func(t *testing.T) {
		paid, err := svc.Pay(ctx, userID, p.ID)
		require.NoError(t, err)
		require.Equal(t, 1, paid.MonthsPaid)

		txs, err := st.Transactions().ListTransactions(ctx, userID, store.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		require.Equal(t, int64(3_334), txs[0].AmountCents)
		require.Equal(t, domain.KindExpense, txs[0].Kind)
		require.Contains(t, txs[0].Description, "(1/3)")
	})

	t.Run("remaining payments split evenly and total adds up", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := svc.Pay(ctx, userID, p.ID)
			require.NoError(t, err)
		}

		txs, err := st.Transactions().ListTransactions(ctx, userID, store.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 3)

		var total int64
		for _, tx := range txs {
			total += tx.AmountCents
		}
		require.Equal(t, int64(10_000), total)
	})

	t.Run("settled plans refuse further payments", func(t *testing.T) {
		_, err := svc.Pay(ctx, userID, p.ID)
		require.ErrorIs(t, err, ErrPlanSettled)

		// No extra transaction got booked on the failed attempt.
		txs, err := st.Transactions().ListTransactions(ctx, userID, store.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 3)
	})
}

func TestInstallmentValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &InstallmentService{Store: st}

	t.Run("rejects bad months", func(t *testing.T) {
		_, err := svc.Create(ctx, userID, InstallmentInput{
			Description:   "Phone",
			TotalCents:    50_000,
			MonthsTotal:   12,
			FirstDueMonth: "next month",
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects income categories", func(t *testing.T) {
		cats := &CategoryService{Store: st}
		salary, err := cats.Create(ctx, userID, CategoryInput{Name: "Salary", Kind: domain.KindIncome})
		require.NoError(t, err)

		_, err = svc.Create(ctx, userID, InstallmentInput{
			Description:   "Phone",
			TotalCents:    50_000,
			MonthsTotal:   12,
			FirstDueMonth: "2026-03",
			CategoryID:    &salary.ID,
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("pay against a foreign plan is not found", func(t *testing.T) {
		p, err := svc.Create(ctx, userID, InstallmentInput{
			Description:   "Couch",
			TotalCents:    80_000,
			MonthsTotal:   4,
			FirstDueMonth: "2026-02",
		})
		require.NoError(t, err)

		otherID := newTestUser(t, st)
		_, err = svc.Pay(ctx, otherID, p.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
