package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestReserveWorkerTick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	goals := &GoalService{Store: st}

	g, err := goals.Create(ctx, userID, GoalInput{
		Name:                "Emergency fund",
		TargetCents:         1_000_000,
		MonthlyReserveCents: 25_000,
	})
	require.NoError(t, err)

	// A goal without a monthly amount is left alone.
	_, err = goals.Create(ctx, userID, GoalInput{Name: "Someday", TargetCents: 500_000})
	require.NoError(t, err)

	w := NewReserveWorker(st, slog.Default(), time.Hour)
	month := domain.MonthOf(time.Now())

	w.Tick(ctx)

	t.Run("materialises the current month's reserve row", func(t *testing.T) {
		reserves, err := st.Goals().ListReserves(ctx, g.ID)
		require.NoError(t, err)
		require.Len(t, reserves, 1)
		require.Equal(t, month, reserves[0].Month)
		require.Equal(t, int64(25_000), reserves[0].PlannedCents)
		require.Zero(t, reserves[0].SavedCents)
	})

	t.Run("notifies once about the due reserve", func(t *testing.T) {
		notifs, err := st.Notifications().ListNotifications(ctx, userID, true)
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		require.Equal(t, domain.NotifyReserveDue, notifs[0].Kind)
	})

	t.Run("a second tick changes nothing", func(t *testing.T) {
		w.Tick(ctx)
		w.Tick(ctx)

		reserves, err := st.Goals().ListReserves(ctx, g.ID)
		require.NoError(t, err)
		require.Len(t, reserves, 1)

		notifs, err := st.Notifications().ListNotifications(ctx, userID, false)
		require.NoError(t, err)
		require.Len(t, notifs, 1)
	})

	t.Run("user edits to the reserve row survive later ticks", func(t *testing.T) {
		_, err := goals.RecordReserve(ctx, userID, g.ID, month, 30_000)
		require.NoError(t, err)

		w.Tick(ctx)

		reserves, err := st.Goals().ListReserves(ctx, g.ID)
		require.NoError(t, err)
		require.Len(t, reserves, 1)
		require.Equal(t, int64(30_000), reserves[0].SavedCents)
	})
}

func TestReserveWorkerReconcilesReachedGoals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	goals := &GoalService{Store: st}

	g, err := goals.Create(ctx, userID, GoalInput{
		Name:                "Boat",
		TargetCents:         100_000,
		MonthlyReserveCents: 10_000,
	})
	require.NoError(t, err)

	// Write the covering reserve at the store layer, bypassing the service,
	// so the goal is left active with its target already met.
	now := time.Now().UTC()
	require.NoError(t, st.Goals().UpsertReserve(ctx, domain.MonthlyReserve{
		ID:           idx.New().String(),
		GoalID:       g.ID,
		Month:        "2026-01",
		PlannedCents: 10_000,
		SavedCents:   100_000,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	w := NewReserveWorker(st, slog.Default(), time.Hour)
	w.Tick(ctx)

	t.Run("the sweep flips the goal to reached", func(t *testing.T) {
		got, err := goals.Get(ctx, userID, g.ID)
		require.NoError(t, err)
		require.Equal(t, domain.GoalReached, got.Status)
	})

	t.Run("it notifies once and skips the reserve nudge", func(t *testing.T) {
		w.Tick(ctx)

		notifs, err := st.Notifications().ListNotifications(ctx, userID, false)
		require.NoError(t, err)

		reached, due := 0, 0
		for _, n := range notifs {
			switch n.Kind {
			case domain.NotifyGoalReached:
				reached++
			case domain.NotifyReserveDue:
				due++
			}
		}
		require.Equal(t, 1, reached)
		require.Zero(t, due, "a completed goal gets no reserve nudge")
	})

	t.Run("no reserve row is materialised for the reached goal", func(t *testing.T) {
		reserves, err := st.Goals().ListReserves(ctx, g.ID)
		require.NoError(t, err)
		require.Len(t, reserves, 1, "only the covering row written above")
	})
}

func TestReserveWorkerInstallmentsDue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	installments := &InstallmentService{Store: st}

	// First due month is in the past, so the next payment is overdue.
	p, err := installments.Create(ctx, userID, InstallmentInput{
		Description:   "Fridge",
		TotalCents:    90_000,
		MonthsTotal:   3,
		FirstDueMonth: "2020-01",
	})
	require.NoError(t, err)

	// Due far in the future; must stay silent.
	_, err = installments.Create(ctx, userID, InstallmentInput{
		Description:   "Hypothetical",
		TotalCents:    10_000,
		MonthsTotal:   2,
		FirstDueMonth: "2999-12",
	})
	require.NoError(t, err)

	w := NewReserveWorker(st, slog.Default(), time.Hour)
	w.Tick(ctx)
	w.Tick(ctx)

	notifs, err := st.Notifications().ListNotifications(ctx, userID, false)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	require.Equal(t, domain.NotifyInstallmentDue, notifs[0].Kind)
	require.Contains(t, notifs[0].Title, "Fridge")

	t.Run("paying moves the nudge to the next installment", func(t *testing.T) {
		_, err := installments.Pay(ctx, userID, p.ID)
		require.NoError(t, err)

		w.Tick(ctx)

		notifs, err := st.Notifications().ListNotifications(ctx, userID, false)
		require.NoError(t, err)

		due := 0
		for _, n := range notifs {
			if n.Kind == domain.NotifyInstallmentDue {
				due++
			}
		}
		// Same month key, new payment index: the dedup key is per month, so
		// the second nudge replaces nothing but also does not duplicate.
		require.Equal(t, 1, due)
	})

	t.Run("mark all read clears the inbox", func(t *testing.T) {
		notifSvc := &NotificationService{Store: st}
		require.NoError(t, notifSvc.MarkAllRead(ctx, userID))

		unread, err := notifSvc.List(ctx, userID, true)
		require.NoError(t, err)
		require.Empty(t, unread)

		all, err := notifSvc.List(ctx, userID, false)
		require.NoError(t, err)
		require.NotEmpty(t, all)
	})
}
