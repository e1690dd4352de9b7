package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
)

type installmentsRepo struct {
	db DBTX
}

const installmentColumns = `id, user_id, description, total_cents, months_total, months_paid, first_due_month, category_id, created_at, updated_at`

func (r *installmentsRepo) CreateInstallmentPlan(ctx context.Context, p domain.InstallmentPlan) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO installment_plans (id, user_id, description, total_cents, months_total, months_paid, first_due_month, category_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Description, p.TotalCents, p.MonthsTotal,
		p.MonthsPaid, p.FirstDueMonth, mapOptionalString(p.CategoryID),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *installmentsRepo) GetInstallmentPlan(ctx context.Context, userID, id string) (domain.InstallmentPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+installmentColumns+` FROM installment_plans WHERE id = ? AND user_id = ?`, id, userID)
	p, err := scanInstallmentPlan(row)
	if err != nil {
		return domain.InstallmentPlan{}, mapNotFound(err)
	}
	return p, nil
}

func (r *installmentsRepo) ListInstallmentPlans(ctx context.Context, userID string) ([]domain.InstallmentPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+installmentColumns+` FROM installment_plans WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.InstallmentPlan
	for rows.Next() {
		p, err := scanInstallmentPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *installmentsRepo) SetMonthsPaid(ctx context.Context, userID, id string, monthsPaid int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE installment_plans SET months_paid = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		monthsPaid, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *installmentsRepo) DeleteInstallmentPlan(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM installment_plans WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanInstallmentPlan(row rowScanner) (domain.InstallmentPlan, error) {
	var (
		p        domain.InstallmentPlan
		category sql.NullString
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Description, &p.TotalCents,
		&p.MonthsTotal, &p.MonthsPaid, &p.FirstDueMonth, &category,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.InstallmentPlan{}, err
	}
	p.CategoryID = mapNullStringPtr(category)
	return p, nil
}
