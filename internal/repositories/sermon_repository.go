package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

const sermonColumns = `id, title, COALESCE(preacher, ''), COALESCE(series, ''), COALESCE(video_url, ''),
		COALESCE(audio_url, ''), date_preached, COALESCE(description, ''), COALESCE(duration, ''),
		COALESCE(category, '')`

// sermonRepository implements SermonRepository
type sermonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSermonRepository creates a new sermon repository
func NewSermonRepository(db *sql.DB, logger *zap.Logger) *sermonRepository {
	return &sermonRepository{
		db:     db,
		logger: logger,
	}
}

// categoryFilter returns the WHERE clause and its arguments; an empty category matches every sermon
func categoryFilter(category string) (string, []any) {
	if category == "" {
		return "", nil
	}
	return " WHERE category = $1", []any{category}
}

func scanSermon(row rowScanner) (*models.Sermon, error) {
	sermon := &models.Sermon{}
	err := row.Scan(
		&sermon.ID,
		&sermon.Title,
		&sermon.Preacher,
		&sermon.Series,
		&sermon.VideoURL,
		&sermon.AudioURL,
		&sermon.DatePreached,
		&sermon.Description,
		&sermon.Duration,
		&sermon.Category,
	)
	if err != nil {
		return nil, err
	}
	return sermon, nil
}

// GetLatest retrieves the most recently preached sermon, optionally within a category
func (r *sermonRepository) GetLatest(ctx context.Context, category string) (*models.Sermon, error) {
	where, args := categoryFilter(category)
	query := `SELECT ` + sermonColumns + ` FROM sermons` + where + ` ORDER BY date_preached DESC, id DESC LIMIT 1`

	sermon, err := scanSermon(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get latest sermon", zap.Error(err), zap.String("category", category))
		return nil, fmt.Errorf("failed to get latest sermon: %w", err)
	}

	return sermon, nil
}

// List retrieves a page of sermons ordered from newest to oldest
func (r *sermonRepository) List(ctx context.Context, category string, limit, offset int) ([]models.Sermon, error) {
	where, args := categoryFilter(category)
	query := fmt.Sprintf(`SELECT %s FROM sermons%s ORDER BY date_preached DESC, id DESC LIMIT $%d OFFSET $%d`,
		sermonColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query sermons", zap.Error(err))
		return nil, fmt.Errorf("failed to query sermons: %w", err)
	}
	defer rows.Close()

	sermons := []models.Sermon{}
	for rows.Next() {
		sermon, err := scanSermon(rows)
		if err != nil {
			r.logger.Error("failed to scan sermon", zap.Error(err))
			return nil, fmt.Errorf("failed to scan sermon: %w", err)
		}
		sermons = append(sermons, *sermon)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating sermons", zap.Error(err))
		return nil, fmt.Errorf("error iterating sermons: %w", err)
	}

	return sermons, nil
}

// Count returns the number of sermons, optionally within a category
func (r *sermonRepository) Count(ctx context.Context, category string) (int, error) {
	where, args := categoryFilter(category)
	query := `SELECT COUNT(*) FROM sermons` + where

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count sermons", zap.Error(err))
		return 0, fmt.Errorf("failed to count sermons: %w", err)
	}

	return total, nil
}

// GetByID retrieves a sermon by its ID
func (r *sermonRepository) GetByID(ctx context.Context, id int) (*models.Sermon, error) {
	query := `SELECT ` + sermonColumns + ` FROM sermons WHERE id = $1`

	sermon, err := scanSermon(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get sermon by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get sermon by id: %w", err)
	}

	return sermon, nil
}

// Create inserts a new sermon and returns its ID
func (r *sermonRepository) Create(ctx context.Context, input *models.SermonInput) (int, error) {
	query := `
		INSERT INTO sermons (title, preacher, series, video_url, audio_url, date_preached, description, duration, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		input.Title, input.Preacher, input.Series, input.VideoURL, input.AudioURL,
		input.DatePreached, input.Description, input.Duration, input.Category,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create sermon", zap.Error(err))
		return 0, fmt.Errorf("failed to create sermon: %w", err)
	}

	return id, nil
}

// Update overwrites every column of a sermon
func (r *sermonRepository) Update(ctx context.Context, id int, input *models.SermonInput) error {
	query := `
		UPDATE sermons
		SET title = $1, preacher = $2, series = $3, video_url = $4, audio_url = $5,
			date_preached = $6, description = $7, duration = $8, category = $9
		WHERE id = $10
	`

	_, err := r.db.ExecContext(ctx, query,
		input.Title, input.Preacher, input.Series, input.VideoURL, input.AudioURL,
		input.DatePreached, input.Description, input.Duration, input.Category, id,
	)
	if err != nil {
		r.logger.Error("failed to update sermon", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update sermon: %w", err)
	}

	return nil
}

// Delete removes a sermon by its ID
func (r *sermonRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM sermons WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete sermon", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete sermon: %w", err)
	}

	return nil
}
