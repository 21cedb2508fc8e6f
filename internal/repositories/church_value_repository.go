package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

const churchValueColumns = `id, title, COALESCE(description, ''), COALESCE(icon, ''), COALESCE(display_order, 0)`

// churchValueRepository implements ChurchValueRepository
type churchValueRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewChurchValueRepository creates a new church value repository
func NewChurchValueRepository(db *sql.DB, logger *zap.Logger) *churchValueRepository {
	return &churchValueRepository{
		db:     db,
		logger: logger,
	}
}

func scanChurchValue(row rowScanner) (*models.ChurchValue, error) {
	value := &models.ChurchValue{}
	err := row.Scan(&value.ID, &value.Title, &value.Description, &value.Icon, &value.DisplayOrder)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// List retrieves every church value by display order
func (r *churchValueRepository) List(ctx context.Context) ([]models.ChurchValue, error) {
	query := `SELECT ` + churchValueColumns + ` FROM church_values ORDER BY display_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query church values", zap.Error(err))
		return nil, fmt.Errorf("failed to query church values: %w", err)
	}
	defer rows.Close()

	values := []models.ChurchValue{}
	for rows.Next() {
		value, err := scanChurchValue(rows)
		if err != nil {
			r.logger.Error("failed to scan church value", zap.Error(err))
			return nil, fmt.Errorf("failed to scan church value: %w", err)
		}
		values = append(values, *value)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating church values", zap.Error(err))
		return nil, fmt.Errorf("error iterating church values: %w", err)
	}

	return values, nil
}

// GetByID retrieves a church value by its ID
func (r *churchValueRepository) GetByID(ctx context.Context, id int) (*models.ChurchValue, error) {
	query := `SELECT ` + churchValueColumns + ` FROM church_values WHERE id = $1`

	value, err := scanChurchValue(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get church value by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get church value by id: %w", err)
	}

	return value, nil
}

// Create inserts a new church value and returns its ID
func (r *churchValueRepository) Create(ctx context.Context, input *models.ChurchValueInput) (int, error) {
	query := `
		INSERT INTO church_values (title, description, icon, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		input.Title, input.Description, input.Icon, displayOrder(input.DisplayOrder),
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create church value", zap.Error(err))
		return 0, fmt.Errorf("failed to create church value: %w", err)
	}

	return id, nil
}

// Update overwrites every column of a church value
func (r *churchValueRepository) Update(ctx context.Context, id int, input *models.ChurchValueInput) error {
	query := `
		UPDATE church_values
		SET title = $1, description = $2, icon = $3, display_order = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		input.Title, input.Description, input.Icon, displayOrder(input.DisplayOrder), id,
	)
	if err != nil {
		r.logger.Error("failed to update church value", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update church value: %w", err)
	}

	return nil
}

// Delete removes a church value by its ID
func (r *churchValueRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM church_values WHERE id = $1`, id); err != nil {
		r.logger.Error("failed to delete church value", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete church value: %w", err)
	}

	return nil
}
