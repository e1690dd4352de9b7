package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
)

type goalsRepo struct {
	db DBTX
}

const goalColumns = `id, user_id, name, target_cents, monthly_reserve_cents, status, created_at, updated_at`

func (r *goalsRepo) CreateGoal(ctx context.Context, g domain.Goal) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO goals (id, user_id, name, target_cents, monthly_reserve_cents, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Name, g.TargetCents, g.MonthlyReserveCents,
		string(g.Status), g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (r *goalsRepo) GetGoal(ctx context.Context, userID, id string) (domain.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	g, err := scanGoal(row)
	if err != nil {
		return domain.Goal{}, mapNotFound(err)
	}
	return g, nil
}

func (r *goalsRepo) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return r.listGoals(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at, id`, userID)
}

func (r *goalsRepo) ListActiveGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return r.listGoals(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? AND status = 'active' ORDER BY created_at, id`, userID)
}

func (r *goalsRepo) listGoals(ctx context.Context, query string, args ...any) ([]domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *goalsRepo) UpdateGoal(ctx context.Context, g domain.Goal) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE goals SET name = ?, target_cents = ?, monthly_reserve_cents = ?, status = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		g.Name, g.TargetCents, g.MonthlyReserveCents, string(g.Status),
		g.UpdatedAt, g.ID, g.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *goalsRepo) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *goalsRepo) UpsertReserve(ctx context.Context, res domain.MonthlyReserve) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO monthly_reserves (id, goal_id, month, planned_cents, saved_cents, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (goal_id, month) DO UPDATE SET
    planned_cents = excluded.planned_cents,
    saved_cents   = excluded.saved_cents,
    updated_at    = excluded.updated_at`,
		res.ID, res.GoalID, res.Month, res.PlannedCents, res.SavedCents,
		res.CreatedAt, res.UpdatedAt,
	)
	return err
}

func (r *goalsRepo) EnsureReserve(ctx context.Context, res domain.MonthlyReserve) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
INSERT INTO monthly_reserves (id, goal_id, month, planned_cents, saved_cents, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (goal_id, month) DO NOTHING`,
		res.ID, res.GoalID, res.Month, res.PlannedCents, res.SavedCents,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *goalsRepo) GetReserve(ctx context.Context, goalID, month string) (domain.MonthlyReserve, error) {
	var mr domain.MonthlyReserve
	err := r.db.QueryRowContext(ctx, `
SELECT id, goal_id, month, planned_cents, saved_cents, created_at, updated_at
FROM monthly_reserves WHERE goal_id = ? AND month = ?`, goalID, month,
	).Scan(&mr.ID, &mr.GoalID, &mr.Month, &mr.PlannedCents,
		&mr.SavedCents, &mr.CreatedAt, &mr.UpdatedAt)
	if err != nil {
		return domain.MonthlyReserve{}, mapNotFound(err)
	}
	return mr, nil
}

func (r *goalsRepo) ListReserves(ctx context.Context, goalID string) ([]domain.MonthlyReserve, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, goal_id, month, planned_cents, saved_cents, created_at, updated_at
FROM monthly_reserves WHERE goal_id = ? ORDER BY month`, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MonthlyReserve
	for rows.Next() {
		var mr domain.MonthlyReserve
		if err := rows.Scan(&mr.ID, &mr.GoalID, &mr.Month, &mr.PlannedCents,
			&mr.SavedCents, &mr.CreatedAt, &mr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, mr)
	}
	return out, rows.Err()
}

func (r *goalsRepo) TotalSaved(ctx context.Context, goalID string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(saved_cents), 0) FROM monthly_reserves WHERE goal_id = ?`, goalID,
	).Scan(&total)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	return total, nil
}

func scanGoal(row rowScanner) (domain.Goal, error) {
	var (
		g      domain.Goal
		status string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetCents,
		&g.MonthlyReserveCents, &status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.Goal{}, err
	}
	g.Status = domain.GoalStatus(status)
	return g, nil
}
