package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

const faqColumns = `id, question, answer, COALESCE(display_order, 0)`

// faqRepository implements FAQRepository
type faqRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFAQRepository creates a new FAQ repository
func NewFAQRepository(db *sql.DB, logger *zap.Logger) *faqRepository {
	return &faqRepository{
		db:     db,
		logger: logger,
	}
}

func scanFAQ(row rowScanner) (*models.FAQ, error) {
	faq := &models.FAQ{}
	if err := row.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.DisplayOrder); err != nil {
		return nil, err
	}
	return faq, nil
}

// List retrieves every FAQ by display order
func (r *faqRepository) List(ctx context.Context) ([]models.FAQ, error) {
	query := `SELECT ` + faqColumns + ` FROM faqs ORDER BY display_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query faqs", zap.Error(err))
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	faqs := []models.FAQ{}
	for rows.Next() {
		faq, err := scanFAQ(rows)
		if err != nil {
			r.logger.Error("failed to scan faq", zap.Error(err))
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		faqs = append(faqs, *faq)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating faqs", zap.Error(err))
		return nil, fmt.Errorf("error iterating faqs: %w", err)
	}

	return faqs, nil
}

// GetByID retrieves a FAQ by its ID
func (r *faqRepository) GetByID(ctx context.Context, id int) (*models.FAQ, error) {
	query := `SELECT ` + faqColumns + ` FROM faqs WHERE id = $1`

	faq, err := scanFAQ(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get faq by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get faq by id: %w", err)
	}

	return faq, nil
}

// Create inserts a new FAQ and returns its ID
func (r *faqRepository) Create(ctx context.Context, input *models.FAQInput) (int, error) {
	query := `INSERT INTO faqs (question, answer, display_order) VALUES ($1, $2, $3) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, input.Question, input.Answer, displayOrder(input.DisplayOrder)).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create faq", zap.Error(err))
		return 0, fmt.Errorf("failed to create faq: %w", err)
	}

	return id, nil
}

// Update overwrites every column of a FAQ
func (r *faqRepository) Update(ctx context.Context, id int, input *models.FAQInput) error {
	query := `UPDATE faqs SET question = $1, answer = $2, display_order = $3 WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, input.Question, input.Answer, displayOrder(input.DisplayOrder), id)
	if err != nil {
		r.logger.Error("failed to update faq", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update faq: %w", err)
	}

	return nil
}

// Delete removes a FAQ by its ID
func (r *faqRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id); err != nil {
		r.logger.Error("failed to delete faq", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete faq: %w", err)
	}

	return nil
}
