package repositories

import (
	"database/sql"
	"fmt"

	"churchconnect/internal/models"
)

type NotificationRepository interface {
	Create(n *models.Notification) error
	ListByUser(userID, limit, offset int) ([]models.Notification, error)
	UnreadCount(userID int) (int, error)
	MarkRead(id int64, userID int) error
	MarkAllRead(userID int) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Create(n *models.Notification) error {
	const q = `
		INSERT INTO notifications (user_id, type, message)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at
	`
	if err := r.DB.QueryRow(q, n.UserID, n.Type, n.Message).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return fmt.Errorf("notification create: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(userID, limit, offset int) ([]models.Notification, error) {
	const q = `
		SELECT id, user_id, type, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(q, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("notification list: %w", err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("notification list scan: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepository) UnreadCount(userID int) (int, error) {
	var c int
	if err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID,
	).Scan(&c); err != nil {
		return 0, fmt.Errorf("notification unread count: %w", err)
	}
	return c, nil
}

func (r *notificationRepository) MarkRead(id int64, userID int) error {
	_, err := r.DB.Exec(`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *notificationRepository) MarkAllRead(userID int) error {
	_, err := r.DB.Exec(`UPDATE notifications SET is_read = TRUE WHERE user_id = $1`, userID)
	return err
}
