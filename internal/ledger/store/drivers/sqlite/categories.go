package sqlite

import (
	"context"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
)

type categoriesRepo struct {
	db DBTX
}

const categoryColumns = `id, user_id, name, kind, color, created_at, updated_at`

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO categories (id, user_id, name, kind, color, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, string(c.Kind), c.Color, c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *categoriesRepo) GetCategory(ctx context.Context, userID, id string) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	c, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, c domain.Category) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE categories SET name = ?, kind = ?, color = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		c.Name, string(c.Kind), c.Color, c.UpdatedAt, c.ID, c.UserID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (domain.Category, error) {
	var (
		c    domain.Category
		kind string
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &kind, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Category{}, err
	}
	c.Kind = domain.EntryKind(kind)
	return c, nil
}
