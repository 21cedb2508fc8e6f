package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

const ministryColumns = `id, name, COALESCE(short_description, ''), COALESCE(description, ''),
		COALESCE(image_url, ''), COALESCE(schedule, '')`

// ministryRepository implements MinistryRepository
type ministryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMinistryRepository creates a new ministry repository
func NewMinistryRepository(db *sql.DB, logger *zap.Logger) *ministryRepository {
	return &ministryRepository{
		db:     db,
		logger: logger,
	}
}

func scanMinistry(row rowScanner) (*models.Ministry, error) {
	ministry := &models.Ministry{}
	err := row.Scan(
		&ministry.ID,
		&ministry.Name,
		&ministry.ShortDescription,
		&ministry.Description,
		&ministry.ImageURL,
		&ministry.Schedule,
	)
	if err != nil {
		return nil, err
	}
	return ministry, nil
}

// List retrieves every ministry ordered by ID
func (r *ministryRepository) List(ctx context.Context) ([]models.Ministry, error) {
	query := `SELECT ` + ministryColumns + ` FROM ministries ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query ministries", zap.Error(err))
		return nil, fmt.Errorf("failed to query ministries: %w", err)
	}
	defer rows.Close()

	ministries := []models.Ministry{}
	for rows.Next() {
		ministry, err := scanMinistry(rows)
		if err != nil {
			r.logger.Error("failed to scan ministry", zap.Error(err))
			return nil, fmt.Errorf("failed to scan ministry: %w", err)
		}
		ministries = append(ministries, *ministry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating ministries", zap.Error(err))
		return nil, fmt.Errorf("error iterating ministries: %w", err)
	}

	return ministries, nil
}

// ListNames retrieves the id and name of the first ministries, as shown in the page footer
func (r *ministryRepository) ListNames(ctx context.Context, limit int) ([]models.Ministry, error) {
	query := `SELECT id, name FROM ministries ORDER BY id ASC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to query ministry names", zap.Error(err))
		return nil, fmt.Errorf("failed to query ministry names: %w", err)
	}
	defer rows.Close()

	ministries := []models.Ministry{}
	for rows.Next() {
		var ministry models.Ministry
		if err := rows.Scan(&ministry.ID, &ministry.Name); err != nil {
			r.logger.Error("failed to scan ministry name", zap.Error(err))
			return nil, fmt.Errorf("failed to scan ministry name: %w", err)
		}
		ministries = append(ministries, ministry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating ministry names", zap.Error(err))
		return nil, fmt.Errorf("error iterating ministry names: %w", err)
	}

	return ministries, nil
}

// ListLimited retrieves up to limit ministries ordered by ID
func (r *ministryRepository) ListLimited(ctx context.Context, limit int) ([]models.Ministry, error) {
	query := `SELECT ` + ministryColumns + ` FROM ministries ORDER BY id ASC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("failed to query ministries", zap.Error(err))
		return nil, fmt.Errorf("failed to query ministries: %w", err)
	}
	defer rows.Close()

	ministries := []models.Ministry{}
	for rows.Next() {
		ministry, err := scanMinistry(rows)
		if err != nil {
			r.logger.Error("failed to scan ministry", zap.Error(err))
			return nil, fmt.Errorf("failed to scan ministry: %w", err)
		}
		ministries = append(ministries, *ministry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating ministries", zap.Error(err))
		return nil, fmt.Errorf("error iterating ministries: %w", err)
	}

	return ministries, nil
}

// GetByID retrieves a ministry by its ID
func (r *ministryRepository) GetByID(ctx context.Context, id int) (*models.Ministry, error) {
	query := `SELECT ` + ministryColumns + ` FROM ministries WHERE id = $1`

	ministry, err := scanMinistry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get ministry by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get ministry by id: %w", err)
	}

	return ministry, nil
}

// Create inserts a new ministry and returns its ID
func (r *ministryRepository) Create(ctx context.Context, input *models.MinistryInput) (int, error) {
	query := `
		INSERT INTO ministries (name, short_description, description, image_url, schedule)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		input.Name, input.ShortDescription, input.Description, input.ImageURL, input.Schedule,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create ministry", zap.Error(err))
		return 0, fmt.Errorf("failed to create ministry: %w", err)
	}

	return id, nil
}

// Update overwrites every column of a ministry
func (r *ministryRepository) Update(ctx context.Context, id int, input *models.MinistryInput) error {
	query := `
		UPDATE ministries
		SET name = $1, short_description = $2, description = $3, image_url = $4, schedule = $5
		WHERE id = $6
	`

	_, err := r.db.ExecContext(ctx, query,
		input.Name, input.ShortDescription, input.Description, input.ImageURL, input.Schedule, id,
	)
	if err != nil {
		r.logger.Error("failed to update ministry", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update ministry: %w", err)
	}

	return nil
}

// Delete removes a ministry by its ID
func (r *ministryRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ministries WHERE id = $1`, id); err != nil {
		r.logger.Error("failed to delete ministry", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete ministry: %w", err)
	}

	return nil
}
