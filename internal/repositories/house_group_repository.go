package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

// houseGroupRepository implements HouseGroupRepository
type houseGroupRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHouseGroupRepository creates a new house group repository
func NewHouseGroupRepository(db *sql.DB, logger *zap.Logger) *houseGroupRepository {
	return &houseGroupRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves every house group
func (r *houseGroupRepository) List(ctx context.Context) ([]models.HouseGroup, error) {
	query := `SELECT id, name, COALESCE(day_time, ''), COALESCE(description, '') FROM house_groups ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query house groups", zap.Error(err))
		return nil, fmt.Errorf("failed to query house groups: %w", err)
	}
	defer rows.Close()

	groups := []models.HouseGroup{}
	for rows.Next() {
		var group models.HouseGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.DayTime, &group.Description); err != nil {
			r.logger.Error("failed to scan house group", zap.Error(err))
			return nil, fmt.Errorf("failed to scan house group: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating house groups", zap.Error(err))
		return nil, fmt.Errorf("error iterating house groups: %w", err)
	}

	return groups, nil
}
