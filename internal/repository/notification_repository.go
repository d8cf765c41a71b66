package repository

import (
	"database/sql"
	"time"

	"github.com/unclebandit/loanchat-backend/internal/model"
)

// NotificationRepositoryInterface defines methods used by the queue subscriber and worker
type NotificationRepositoryInterface interface {
	Create(n *model.Notification) error
	Update(n *model.Notification) error
	GetByID(id int) (*model.Notification, error)
	UpdateStatus(id int, status, lastError string) error
}

type NotificationRepository struct {
	DB *sql.DB
}

// Create inserts a new decision notification and returns the created ID
func (r *NotificationRepository) Create(n *model.Notification) error {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	query := `
        INSERT INTO notifications
        (application_id, customer_id, status, rendered_content, last_error, retry_count, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(
		query,
		n.ApplicationID,
		n.CustomerID,
		n.Status,
		n.RenderedContent,
		n.LastError,
		n.RetryCount,
		n.CreatedAt,
		n.UpdatedAt,
	).Scan(&n.ID)
}

// Update updates an existing notification (e.g., status, last_error, retry_count)
func (r *NotificationRepository) Update(n *model.Notification) error {
	n.UpdatedAt = time.Now()
	query := `
        UPDATE notifications
        SET status=$1, last_error=$2, retry_count=$3, updated_at=$4
        WHERE id=$5
    `
	_, err := r.DB.Exec(query, n.Status, n.LastError, n.RetryCount, n.UpdatedAt, n.ID)
	return err
}

// GetByID fetches a notification by its ID
func (r *NotificationRepository) GetByID(id int) (*model.Notification, error) {
	query := `
        SELECT id, application_id, customer_id, status, rendered_content, last_error, retry_count, created_at, updated_at
        FROM notifications
        WHERE id=$1
    `
	var n model.Notification
	err := r.DB.QueryRow(query, id).Scan(
		&n.ID,
		&n.ApplicationID,
		&n.CustomerID,
		&n.Status,
		&n.RenderedContent,
		&n.LastError,
		&n.RetryCount,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &n, nil
}

// UpdateStatus sets the delivery status for a notification
func (r *NotificationRepository) UpdateStatus(id int, status, lastError string) error {
	query := `
        UPDATE notifications
        SET status=$1, last_error=$2, updated_at=$3
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, status, lastError, time.Now(), id)
	return err
}
