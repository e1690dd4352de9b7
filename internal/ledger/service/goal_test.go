package service

import (
	"context"
	"testing"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, st store.Store) string {
	t.Helper()

	ctx := context.Background()
	svc := newAuthService(st)
	u, err := svc.Register(ctx, idx.New().String()+"@example.com", "Test User", "hunter22")
	require.NoError(t, err)
	return u.ID
}

func TestGoalLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &GoalService{Store: st}

	g, err := svc.Create(ctx, userID, GoalInput{
		Name:                "New laptop",
		TargetCents:         200_000,
		MonthlyReserveCents: 50_000,
	})
	require.NoError(t, err)
	require.Equal(t, domain.GoalActive, g.Status)

	t.Run("get includes progress", func(t *testing.T) {
		got, err := svc.Get(ctx, userID, g.ID)
		require.NoError(t, err)
		require.Equal(t, g.ID, got.ID)
		require.Zero(t, got.SavedCents)
	})

	t.Run("other users cannot see it", func(t *testing.T) {
		otherID := newTestUser(t, st)
		_, err := svc.Get(ctx, otherID, g.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("recording a reserve accumulates progress", func(t *testing.T) {
		mr, err := svc.RecordReserve(ctx, userID, g.ID, "2026-01", 50_000)
		require.NoError(t, err)
		require.Equal(t, int64(50_000), mr.SavedCents)
		require.Equal(t, int64(50_000), mr.PlannedCents, "planned comes from the goal")

		got, err := svc.Get(ctx, userID, g.ID)
		require.NoError(t, err)
		require.Equal(t, int64(50_000), got.SavedCents)
	})

	t.Run("re-recording the same month overwrites not adds", func(t *testing.T) {
		_, err := svc.RecordReserve(ctx, userID, g.ID, "2026-01", 60_000)
		require.NoError(t, err)

		got, err := svc.Get(ctx, userID, g.ID)
		require.NoError(t, err)
		require.Equal(t, int64(60_000), got.SavedCents)
	})

	t.Run("rejects malformed months", func(t *testing.T) {
		_, err := svc.RecordReserve(ctx, userID, g.ID, "2026-13", 100)
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.RecordReserve(ctx, userID, g.ID, "January", 100)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestGoalReached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &GoalService{Store: st}

	g, err := svc.Create(ctx, userID, GoalInput{Name: "Holiday", TargetCents: 100_000})
	require.NoError(t, err)

	_, err = svc.RecordReserve(ctx, userID, g.ID, "2026-01", 60_000)
	require.NoError(t, err)

	got, err := svc.Get(ctx, userID, g.ID)
	require.NoError(t, err)
	require.Equal(t, domain.GoalActive, got.Status)

	_, err = svc.RecordReserve(ctx, userID, g.ID, "2026-02", 40_000)
	require.NoError(t, err)

	t.Run("goal flips to reached at the target", func(t *testing.T) {
		got, err := svc.Get(ctx, userID, g.ID)
		require.NoError(t, err)
		require.Equal(t, domain.GoalReached, got.Status)
	})

	t.Run("a goal_reached notification lands exactly once", func(t *testing.T) {
		notifs, err := st.Notifications().ListNotifications(ctx, userID, false)
		require.NoError(t, err)

		var reached []domain.Notification
		for _, n := range notifs {
			if n.Kind == domain.NotifyGoalReached {
				reached = append(reached, n)
			}
		}
		require.Len(t, reached, 1)

		// Recording more money must not re-notify thanks to the dedup key.
		_, err = svc.RecordReserve(ctx, userID, g.ID, "2026-03", 10_000)
		require.NoError(t, err)

		notifs, err = st.Notifications().ListNotifications(ctx, userID, false)
		require.NoError(t, err)

		count := 0
		for _, n := range notifs {
			if n.Kind == domain.NotifyGoalReached {
				count++
			}
		}
		require.Equal(t, 1, count)
	})

	t.Run("abandoned goals refuse new reserves", func(t *testing.T) {
		g2, err := svc.Create(ctx, userID, GoalInput{Name: "Doomed", TargetCents: 1_000})
		require.NoError(t, err)

		_, err = svc.Abandon(ctx, userID, g2.ID)
		require.NoError(t, err)

		_, err = svc.RecordReserve(ctx, userID, g2.ID, "2026-01", 100)
		require.ErrorIs(t, err, ErrGoalNotActive)
	})
}

func TestGoalUpdateLoweredTarget(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &GoalService{Store: st}

	g, err := svc.Create(ctx, userID, GoalInput{Name: "Car", TargetCents: 200_000})
	require.NoError(t, err)

	_, err = svc.RecordReserve(ctx, userID, g.ID, "2026-01", 100_000)
	require.NoError(t, err)

	t.Run("lowering the target below the saved total completes the goal", func(t *testing.T) {
		updated, err := svc.Update(ctx, userID, g.ID, GoalInput{Name: "Car", TargetCents: 50_000})
		require.NoError(t, err)
		require.Equal(t, domain.GoalReached, updated.Status)

		got, err := svc.Get(ctx, userID, g.ID)
		require.NoError(t, err)
		require.Equal(t, domain.GoalReached, got.Status)
	})

	t.Run("the completion notification lands exactly once", func(t *testing.T) {
		_, err := svc.Update(ctx, userID, g.ID, GoalInput{Name: "Car", TargetCents: 40_000})
		require.NoError(t, err)

		notifs, err := st.Notifications().ListNotifications(ctx, userID, false)
		require.NoError(t, err)

		count := 0
		for _, n := range notifs {
			if n.Kind == domain.NotifyGoalReached {
				count++
			}
		}
		require.Equal(t, 1, count)
	})
}

func TestRecordReserveKeepsRowIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	userID := newTestUser(t, st)
	svc := &GoalService{Store: st}

	g, err := svc.Create(ctx, userID, GoalInput{Name: "Bike", TargetCents: 500_000})
	require.NoError(t, err)

	first, err := svc.RecordReserve(ctx, userID, g.ID, "2026-01", 10_000)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := svc.RecordReserve(ctx, userID, g.ID, "2026-01", 20_000)
	require.NoError(t, err)

	// Re-posting a month updates the stored row in place; the response must
	// carry that row's identity, not a fresh one.
	require.Equal(t, first.ID, second.ID)
	require.True(t, first.CreatedAt.Equal(second.CreatedAt))
	require.Equal(t, int64(20_000), second.SavedCents)

	reserves, err := st.Goals().ListReserves(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, reserves, 1)
	require.Equal(t, first.ID, reserves[0].ID)
}
