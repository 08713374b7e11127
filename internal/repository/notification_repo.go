package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"studiodesk/internal/model"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) (int, error) {
	query := `
        INSERT INTO notifications (kind, contract_id, message)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query, n.Kind, n.ContractID, n.Message).Scan(&id)
	return id, err
}

func (r *NotificationRepository) ListUnread(ctx context.Context) ([]model.Notification, error) {
	query := `
        SELECT id, kind, contract_id, message, created_at, read_at
        FROM notifications
        WHERE read_at IS NULL
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.ContractID, &n.Message, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE notifications SET read_at = NOW() WHERE id = $1 AND read_at IS NULL
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ExistsRecent is the worker's guard against duplicate overdue
// reminders for the same installment on the same day.
func (r *NotificationRepository) ExistsRecent(ctx context.Context, kind string, contractID int, message string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM notifications
            WHERE kind = $1 AND contract_id = $2 AND message = $3
              AND created_at > NOW() - INTERVAL '1 day'
        )
    `, kind, contractID, message).Scan(&exists)
	return exists, err
}
