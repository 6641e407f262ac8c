package postgres

import (
	"context"
	"database/sql"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const notificationColumns = `id, user_id, kind, title, message, read, created_at`

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

func scanNotification(s scanner) (*model.Notification, error) {
	var n model.Notification
	if err := s.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create stores a notification.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	q := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + notificationColumns
	return scanNotification(r.db.QueryRowContext(ctx, q, n.ID, n.UserID, n.Kind, n.Title, n.Message, n.Read, n.CreatedAt))
}

// List returns a user's notifications newest first.
func (r *NotificationPostgres) List(ctx context.Context, userID string, unreadOnly bool, pq repository.PageQuery) (*repository.PageResult[model.Notification], error) {
	const where = ` WHERE user_id = $1 AND (NOT $2 OR NOT read)`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`+where, userID, unreadOnly).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + notificationColumns + ` FROM notifications` + where + ` ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, q, userID, unreadOnly, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanNotification)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Notification]{Items: items, Total: total}, nil
}

// MarkRead marks one of the user's notifications as read.
func (r *NotificationPostgres) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return mustAffect(res, sql.ErrNoRows)
}

// MarkAllRead marks every unread notification of the user as read.
func (r *NotificationPostgres) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE user_id = $1 AND NOT read`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
