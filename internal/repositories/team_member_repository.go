package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

const teamMemberColumns = `id, name, COALESCE(role, ''), COALESCE(bio, ''), COALESCE(image_url, ''), COALESCE(display_order, 0)`

// teamMemberRepository implements TeamMemberRepository
type teamMemberRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTeamMemberRepository creates a new team member repository
func NewTeamMemberRepository(db *sql.DB, logger *zap.Logger) *teamMemberRepository {
	return &teamMemberRepository{
		db:     db,
		logger: logger,
	}
}

func scanTeamMember(row rowScanner) (*models.TeamMember, error) {
	member := &models.TeamMember{}
	err := row.Scan(&member.ID, &member.Name, &member.Role, &member.Bio, &member.ImageURL, &member.DisplayOrder)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// List retrieves every team member by display order
func (r *teamMemberRepository) List(ctx context.Context) ([]models.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members ORDER BY display_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query team members", zap.Error(err))
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		member, err := scanTeamMember(rows)
		if err != nil {
			r.logger.Error("failed to scan team member", zap.Error(err))
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, *member)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating team members", zap.Error(err))
		return nil, fmt.Errorf("error iterating team members: %w", err)
	}

	return members, nil
}

// GetByID retrieves a team member by its ID
func (r *teamMemberRepository) GetByID(ctx context.Context, id int) (*models.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE id = $1`

	member, err := scanTeamMember(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get team member by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get team member by id: %w", err)
	}

	return member, nil
}

// Create inserts a new team member and returns its ID
func (r *teamMemberRepository) Create(ctx context.Context, input *models.TeamMemberInput) (int, error) {
	query := `
		INSERT INTO team_members (name, role, bio, image_url, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		input.Name, input.Role, input.Bio, input.ImageURL, displayOrder(input.DisplayOrder),
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create team member", zap.Error(err))
		return 0, fmt.Errorf("failed to create team member: %w", err)
	}

	return id, nil
}

// Update overwrites every column of a team member
func (r *teamMemberRepository) Update(ctx context.Context, id int, input *models.TeamMemberInput) error {
	query := `
		UPDATE team_members
		SET name = $1, role = $2, bio = $3, image_url = $4, display_order = $5
		WHERE id = $6
	`

	_, err := r.db.ExecContext(ctx, query,
		input.Name, input.Role, input.Bio, input.ImageURL, displayOrder(input.DisplayOrder), id,
	)
	if err != nil {
		r.logger.Error("failed to update team member", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update team member: %w", err)
	}

	return nil
}

// Delete removes a team member by its ID
func (r *teamMemberRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id); err != nil {
		r.logger.Error("failed to delete team member", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	return nil
}
