package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/idx"
)

// ReserveWorker is the background loop that keeps monthly bookkeeping up to
// date: it materialises the current month's reserve row for every active goal
// with a monthly amount, and nudges users about reserves and installments
// falling due. All notifications carry dedup keys, so re-running any tick is
// harmless.
type ReserveWorker struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewReserveWorker builds the worker. If interval is 0 or negative it
// defaults to 1 hour.
func NewReserveWorker(st store.Store, logger *slog.Logger, interval time.Duration) *ReserveWorker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &ReserveWorker{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background loop. Non-blocking; pair with Stop.
func (w *ReserveWorker) Start() {
	go w.run()
	w.Logger.Info("reserve worker started", "interval", w.Interval)
}

// Stop shuts the loop down and waits for an in-progress tick to finish.
func (w *ReserveWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	w.Logger.Info("reserve worker stopped")
}

func (w *ReserveWorker) run() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	// First tick immediately so a restart catches up without waiting.
	w.Tick(context.Background())

	for {
		select {
		case <-ticker.C:
			w.Tick(context.Background())
		case <-w.stopCh:
			return
		}
	}
}

// Tick runs one full pass over every user. Failures are logged per user and
// never abort the sweep.
func (w *ReserveWorker) Tick(ctx context.Context) {
	month := domain.MonthOf(time.Now())

	ids, err := w.Store.Users().ListUserIDs(ctx)
	if err != nil {
		w.Logger.Error("reserve sweep failed to list users", "error", err)
		return
	}

	for _, userID := range ids {
		if err := w.sweepUser(ctx, userID, month); err != nil {
			w.Logger.Error("reserve sweep failed for user",
				slog.Any("error", err),
				slog.String("user_id", userID),
			)
		}
	}

	w.Logger.Debug("reserve sweep completed", "month", month, "users", len(ids))
}

func (w *ReserveWorker) sweepUser(ctx context.Context, userID, month string) error {
	if err := w.sweepGoals(ctx, userID, month); err != nil {
		return err
	}
	return w.sweepInstallments(ctx, userID, month)
}

func (w *ReserveWorker) sweepGoals(ctx context.Context, userID, month string) error {
	goals, err := w.Store.Goals().ListActiveGoals(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, g := range goals {
		// Reconcile status first: a target lowered out from under the saved
		// total (or any flip a crash cut short) completes the goal here.
		g, err := flipGoalIfReached(ctx, w.Store, g, now)
		if err != nil {
			return err
		}
		if g.Status != domain.GoalActive {
			continue
		}

		if g.MonthlyReserveCents <= 0 {
			continue
		}

		inserted, err := w.Store.Goals().EnsureReserve(ctx, domain.MonthlyReserve{
			ID:           idx.New().String(),
			GoalID:       g.ID,
			Month:        month,
			PlannedCents: g.MonthlyReserveCents,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		if !inserted {
			// A row for the month already exists, created either by an
			// earlier tick (which sent the nudge) or by the user recording
			// the reserve themselves (no nudge needed).
			continue
		}

		dedup := fmt.Sprintf("reserve_due:%s:%s", g.ID, month)
		if _, err := w.Store.Notifications().CreateNotification(ctx, domain.Notification{
			ID:        idx.New().String(),
			UserID:    userID,
			Kind:      domain.NotifyReserveDue,
			Title:     "Reserve due: " + g.Name,
			Body:      fmt.Sprintf("Set aside %d cents for %s this month.", g.MonthlyReserveCents, g.Name),
			DedupKey:  &dedup,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReserveWorker) sweepInstallments(ctx context.Context, userID, month string) error {
	plans, err := w.Store.Installments().ListInstallmentPlans(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, p := range plans {
		if p.Settled() {
			continue
		}
		// Month keys compare lexicographically, so <= means due or overdue.
		if p.DueMonth(p.MonthsPaid) > month {
			continue
		}

		dedup := fmt.Sprintf("installment_due:%s:%s", p.ID, month)
		if _, err := w.Store.Notifications().CreateNotification(ctx, domain.Notification{
			ID:        idx.New().String(),
			UserID:    userID,
			Kind:      domain.NotifyInstallmentDue,
			Title:     "Installment due: " + p.Description,
			Body:      fmt.Sprintf("Payment %d of %d is due.", p.MonthsPaid+1, p.MonthsTotal),
			DedupKey:  &dedup,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	}
	return nil
}
