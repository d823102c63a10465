package notifications

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRecipientNotFound    = errors.New("recipient profile not found")
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, recipientID int64, notifType, message string) (Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]Notification, int64, error)
	MarkSeen(ctx context.Context, id int64) error
	MarkAllSeen(ctx context.Context, recipientID int64) (int64, error)
	GetRecipientEmail(ctx context.Context, recipientID int64) (string, error)
}

type postgresNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &postgresNotificationRepository{pool: pool}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, recipientID int64, notifType, message string) (Notification, error) {
	query := `INSERT INTO notifications (recipient_id, notif_type, message, seen, created_at)
              VALUES ($1, $2, $3, false, NOW())
              RETURNING id, recipient_id, notif_type, message, seen, created_at`
	row := r.pool.QueryRow(ctx, query, recipientID, notifType, message)

	var n Notification
	if err := row.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Message, &n.Seen, &n.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Notification{}, ErrRecipientNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

func (r *postgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]Notification, int64, error) {
	query := `SELECT id, recipient_id, notif_type, message, seen, created_at
              FROM notifications
              WHERE recipient_id = $1
              ORDER BY id DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Message, &n.Seen, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countRow := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM notifications WHERE recipient_id = $1", recipientID)
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *postgresNotificationRepository) MarkSeen(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE notifications SET seen = true WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllSeen(ctx context.Context, recipientID int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, "UPDATE notifications SET seen = true WHERE recipient_id = $1 AND seen = false", recipientID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *postgresNotificationRepository) GetRecipientEmail(ctx context.Context, recipientID int64) (string, error) {
	var email string
	row := r.pool.QueryRow(ctx, "SELECT email FROM profiles WHERE id = $1 AND is_active = true", recipientID)
	if err := row.Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRecipientNotFound
		}
		return "", err
	}
	return email, nil
}
