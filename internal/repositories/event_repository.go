package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

const eventColumns = `id, title, date_event, COALESCE(description, ''), COALESCE(location, ''),
		COALESCE(category, ''), COALESCE(image_url, '')`

// eventRepository implements EventRepository
type eventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, logger *zap.Logger) *eventRepository {
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.DateEvent,
		&event.Description,
		&event.Location,
		&event.Category,
		&event.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) query(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query events", zap.Error(err))
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.logger.Error("failed to scan event", zap.Error(err))
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating events", zap.Error(err))
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// ListUpcoming retrieves events dated today or later, soonest first
func (r *eventRepository) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date_event >= CURRENT_DATE ORDER BY date_event ASC LIMIT $1`
	return r.query(ctx, query, limit)
}

// List retrieves every event in chronological order
func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date_event ASC`
	return r.query(ctx, query)
}

// GetByID retrieves an event by its ID
func (r *eventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get event by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}

	return event, nil
}

// Create inserts a new event and returns its ID
func (r *eventRepository) Create(ctx context.Context, input *models.EventInput) (int, error) {
	query := `
		INSERT INTO events (title, date_event, description, location, category, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		input.Title, input.DateEvent, input.Description, input.Location, input.Category, input.ImageURL,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create event", zap.Error(err))
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	return id, nil
}

// Update overwrites every column of an event
func (r *eventRepository) Update(ctx context.Context, id int, input *models.EventInput) error {
	query := `
		UPDATE events
		SET title = $1, date_event = $2, description = $3, location = $4, category = $5, image_url = $6
		WHERE id = $7
	`

	_, err := r.db.ExecContext(ctx, query,
		input.Title, input.DateEvent, input.Description, input.Location, input.Category, input.ImageURL, id,
	)
	if err != nil {
		r.logger.Error("failed to update event", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

// Delete removes an event by its ID
func (r *eventRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		r.logger.Error("failed to delete event", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}
