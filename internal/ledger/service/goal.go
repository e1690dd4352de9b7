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

// ErrGoalNotActive rejects writes against reached or abandoned goals.
var ErrGoalNotActive = errors.New("goal_not_active")

type GoalService struct {
	Store store.Store
}

// GoalInput carries the writable goal fields.
type GoalInput struct {
	Name                string
	TargetCents         int64
	MonthlyReserveCents int64
}

func (in *GoalInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return validationErr("name is required")
	}
	if in.TargetCents <= 0 {
		return validationErr("target must be positive")
	}
	if in.MonthlyReserveCents < 0 {
		return validationErr("monthly reserve cannot be negative")
	}
	return nil
}

// GoalWithProgress pairs a goal with the total saved so far.
type GoalWithProgress struct {
	domain.Goal
	SavedCents int64
}

// goalStore is the slice of the store that both a live Store and a Tx
// expose; flipGoalIfReached runs against either.
type goalStore interface {
	Goals() store.Goals
	Notifications() store.Notifications
}

// flipGoalIfReached promotes an active goal to reached once its reserves
// cover the target, emitting the one-time goal_reached notification. The
// target can come within reach by saving more or by lowering the target, so
// every write that moves either side runs this. Returns the goal with any
// status change applied.
func flipGoalIfReached(ctx context.Context, db goalStore, g domain.Goal, now time.Time) (domain.Goal, error) {
	if g.Status != domain.GoalActive {
		return g, nil
	}

	total, err := db.Goals().TotalSaved(ctx, g.ID)
	if err != nil {
		return g, err
	}
	if total < g.TargetCents {
		return g, nil
	}

	g.Status = domain.GoalReached
	g.UpdatedAt = now
	if err := db.Goals().UpdateGoal(ctx, g); err != nil {
		return g, err
	}

	dedup := "goal_reached:" + g.ID
	if _, err := db.Notifications().CreateNotification(ctx, domain.Notification{
		ID:        idx.New().String(),
		UserID:    g.UserID,
		Kind:      domain.NotifyGoalReached,
		Title:     "Goal reached: " + g.Name,
		Body:      "You saved enough to hit your target. Nice work!",
		DedupKey:  &dedup,
		CreatedAt: now,
	}); err != nil {
		return g, err
	}
	return g, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (domain.Goal, error) {
	if err := in.validate(); err != nil {
		return domain.Goal{}, err
	}

	now := time.Now().UTC()
	g := domain.Goal{
		ID:                  idx.New().String(),
		UserID:              userID,
		Name:                in.Name,
		TargetCents:         in.TargetCents,
		MonthlyReserveCents: in.MonthlyReserveCents,
		Status:              domain.GoalActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.Store.Goals().CreateGoal(ctx, g); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Get(ctx context.Context, userID, id string) (GoalWithProgress, error) {
	g, err := s.Store.Goals().GetGoal(ctx, userID, id)
	if err != nil {
		return GoalWithProgress{}, err
	}
	saved, err := s.Store.Goals().TotalSaved(ctx, g.ID)
	if err != nil {
		return GoalWithProgress{}, err
	}
	return GoalWithProgress{Goal: g, SavedCents: saved}, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]GoalWithProgress, error) {
	goals, err := s.Store.Goals().ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		saved, err := s.Store.Goals().TotalSaved(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, GoalWithProgress{Goal: g, SavedCents: saved})
	}
	return out, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id string, in GoalInput) (domain.Goal, error) {
	if err := in.validate(); err != nil {
		return domain.Goal{}, err
	}

	var out domain.Goal

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		g, err := tx.Goals().GetGoal(ctx, userID, id)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		g.Name = in.Name
		g.TargetCents = in.TargetCents
		g.MonthlyReserveCents = in.MonthlyReserveCents
		g.UpdatedAt = now

		if err := tx.Goals().UpdateGoal(ctx, g); err != nil {
			return err
		}

		// Lowering the target below what is already saved completes the goal.
		out, err = flipGoalIfReached(ctx, tx, g, now)
		return err
	})
	if err != nil {
		return domain.Goal{}, err
	}
	return out, nil
}

// Abandon marks the goal abandoned. Its reserve history is kept.
func (s *GoalService) Abandon(ctx context.Context, userID, id string) (domain.Goal, error) {
	g, err := s.Store.Goals().GetGoal(ctx, userID, id)
	if err != nil {
		return domain.Goal{}, err
	}
	if g.Status != domain.GoalActive {
		return domain.Goal{}, ErrGoalNotActive
	}

	g.Status = domain.GoalAbandoned
	g.UpdatedAt = time.Now().UTC()

	if err := s.Store.Goals().UpdateGoal(ctx, g); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	return s.Store.Goals().DeleteGoal(ctx, userID, id)
}

// ListReserves returns the goal's reserve rows in month order. The goal
// lookup first guards cross-user access.
func (s *GoalService) ListReserves(ctx context.Context, userID, goalID string) ([]domain.MonthlyReserve, error) {
	g, err := s.Store.Goals().GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	return s.Store.Goals().ListReserves(ctx, g.ID)
}

// RecordReserve upserts the saved amount for a month. When the cumulative
// saved total reaches the target, the goal flips to reached and the user gets
// a one-time notification.
func (s *GoalService) RecordReserve(ctx context.Context, userID, goalID, month string, savedCents int64) (domain.MonthlyReserve, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return domain.MonthlyReserve{}, validationErr("%s", err)
	}
	if savedCents < 0 {
		return domain.MonthlyReserve{}, validationErr("saved amount cannot be negative")
	}

	var out domain.MonthlyReserve

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		g, err := tx.Goals().GetGoal(ctx, userID, goalID)
		if err != nil {
			return err
		}
		if g.Status == domain.GoalAbandoned {
			return ErrGoalNotActive
		}

		now := time.Now().UTC()
		if err := tx.Goals().UpsertReserve(ctx, domain.MonthlyReserve{
			ID:           idx.New().String(),
			GoalID:       g.ID,
			Month:        month,
			PlannedCents: g.MonthlyReserveCents,
			SavedCents:   savedCents,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}

		// On conflict the upsert keeps the stored row's identity; re-read so
		// the response carries the persisted id and created_at.
		out, err = tx.Goals().GetReserve(ctx, g.ID, month)
		if err != nil {
			return err
		}

		_, err = flipGoalIfReached(ctx, tx, g, now)
		return err
	})
	if err != nil {
		return domain.MonthlyReserve{}, err
	}
	return out, nil
}
