package sqlite

import (
	"context"
	"database/sql"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
)

type notificationsRepo struct {
	db DBTX
}

const notificationColumns = `id, user_id, kind, title, body, dedup_key, read, created_at`

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) (bool, error) {
	// The partial unique index on (user_id, dedup_key) makes a duplicate
	// keyed insert a no-op; keyless notifications always land.
	res, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO notifications (id, user_id, kind, title, body, dedup_key, read, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, string(n.Kind), n.Title, n.Body,
		mapOptionalString(n.DedupKey), n.Read, n.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *notificationsRepo) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) MarkRead(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *notificationsRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`, userID)
	return err
}

func (r *notificationsRepo) DeleteNotification(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanNotification(row rowScanner) (domain.Notification, error) {
	var (
		n     domain.Notification
		kind  string
		dedup sql.NullString
	)
	err := row.Scan(&n.ID, &n.UserID, &kind, &n.Title, &n.Body, &dedup, &n.Read, &n.CreatedAt)
	if err != nil {
		return domain.Notification{}, err
	}
	n.Kind = domain.NotificationKind(kind)
	n.DedupKey = mapNullStringPtr(dedup)
	return n, nil
}
