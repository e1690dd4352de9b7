package sqlite

import (
	"context"
	"database/sql"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
)

type transactionsRepo struct {
	db DBTX
}

const transactionColumns = `id, user_id, category_id, description, amount_cents, kind, occurred_on, created_at, updated_at`

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO transactions (id, user_id, category_id, description, amount_cents, kind, occurred_on, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, mapOptionalString(t.CategoryID), t.Description,
		t.AmountCents, string(t.Kind), t.OccurredOn, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *transactionsRepo) GetTransaction(ctx context.Context, userID, id string) (domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		return domain.Transaction{}, mapNotFound(err)
	}
	return t, nil
}

func (r *transactionsRepo) ListTransactions(ctx context.Context, userID string, f store.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if f.Month != "" {
		query += ` AND strftime('%Y-%m', occurred_on) = ?`
		args = append(args, f.Month)
	}
	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(f.Kind))
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	query += ` ORDER BY occurred_on DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) UpdateTransaction(ctx context.Context, t domain.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE transactions SET category_id = ?, description = ?, amount_cents = ?, kind = ?, occurred_on = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		mapOptionalString(t.CategoryID), t.Description, t.AmountCents,
		string(t.Kind), t.OccurredOn, t.UpdatedAt, t.ID, t.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *transactionsRepo) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		t        domain.Transaction
		category sql.NullString
		kind     string
	)
	err := row.Scan(&t.ID, &t.UserID, &category, &t.Description, &t.AmountCents,
		&kind, &t.OccurredOn, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}
	t.CategoryID = mapNullStringPtr(category)
	t.Kind = domain.EntryKind(kind)
	return t, nil
}
