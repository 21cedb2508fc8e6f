package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

const contactMessageColumns = `id, first_name, last_name, email, COALESCE(subject, ''), message,
		COALESCE(created_at, CURRENT_TIMESTAMP), COALESCE(read, FALSE)`

// contactMessageRepository implements ContactMessageRepository
type contactMessageRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *sql.DB, logger *zap.Logger) *contactMessageRepository {
	return &contactMessageRepository{
		db:     db,
		logger: logger,
	}
}

func scanContactMessage(row rowScanner) (*models.ContactMessage, error) {
	message := &models.ContactMessage{}
	err := row.Scan(
		&message.ID,
		&message.FirstName,
		&message.LastName,
		&message.Email,
		&message.Subject,
		&message.Message,
		&message.CreatedAt,
		&message.Read,
	)
	if err != nil {
		return nil, err
	}
	return message, nil
}

// List retrieves every contact message, newest first
func (r *contactMessageRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	query := `SELECT ` + contactMessageColumns + ` FROM contact_messages ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query contact messages", zap.Error(err))
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		message, err := scanContactMessage(rows)
		if err != nil {
			r.logger.Error("failed to scan contact message", zap.Error(err))
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, *message)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating contact messages", zap.Error(err))
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}

	return messages, nil
}

// GetByID retrieves a contact message by its ID
func (r *contactMessageRepository) GetByID(ctx context.Context, id int) (*models.ContactMessage, error) {
	query := `SELECT ` + contactMessageColumns + ` FROM contact_messages WHERE id = $1`

	message, err := scanContactMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get contact message by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get contact message by id: %w", err)
	}

	return message, nil
}

// Create inserts a new contact message and returns its ID
func (r *contactMessageRepository) Create(ctx context.Context, input *models.ContactMessageInput) (int, error) {
	query := `
		INSERT INTO contact_messages (first_name, last_name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		input.FirstName, input.LastName, input.Email, input.Subject, input.Message,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create contact message", zap.Error(err))
		return 0, fmt.Errorf("failed to create contact message: %w", err)
	}

	return id, nil
}

// SetRead updates the read flag of a contact message
func (r *contactMessageRepository) SetRead(ctx context.Context, id int, read bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET read = $1 WHERE id = $2`, read, id); err != nil {
		r.logger.Error("failed to update contact message read flag", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update contact message read flag: %w", err)
	}

	return nil
}

// Delete removes a contact message by its ID
func (r *contactMessageRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id); err != nil {
		r.logger.Error("failed to delete contact message", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	return nil
}
