package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/blogem/personal-site/models"
	"github.com/jmoiron/sqlx"
)

// ContactMessageRepository interface defines contact message database operations.
// Rows are only ever inserted and read; there is no update or delete.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetAllNewestFirst(ctx context.Context) ([]models.ContactMessage, error)
	Count(ctx context.Context) (int, error)
}

// contactMessageRepository implements ContactMessageRepository interface
type contactMessageRepository struct {
	db *sqlx.DB
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *sqlx.DB) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

// Create inserts a new contact message and populates its ID.
// A zero Timestamp is set to the current UTC time.
func (r *contactMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	} else {
		msg.Timestamp = msg.Timestamp.UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO contact_message (name, email, subject, message, timestamp)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.Timestamp,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

// GetAllNewestFirst retrieves all contact messages ordered by timestamp descending
func (r *contactMessageRepository) GetAllNewestFirst(ctx context.Context) ([]models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, timestamp
		FROM contact_message
		ORDER BY timestamp DESC, id DESC
	`

	var messages []models.ContactMessage
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}

	for i := range messages {
		messages[i].Timestamp = messages[i].Timestamp.UTC()
	}

	return messages, nil
}

// Count returns the total number of contact messages
func (r *contactMessageRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM contact_message"); err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return count, nil
}
