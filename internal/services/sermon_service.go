package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

// SermonRepository is the interface that wraps methods for Sermons table data access
type SermonRepository interface {
	// Method GetLatest retrieves the most recently preached sermon.
	//
	// "category" parameter filters by category; an empty value disables the filter.
	//
	// If no sermon matches, models.ErrNotFound will be returned together with "nil" value.
	GetLatest(ctx context.Context, category string) (*models.Sermon, error)
	// Method List retrieves sermons newest first.
	//
	// "category" parameter works as in GetLatest.
	// "limit" and "offset" parameters select the window of rows to return.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context, category string, limit, offset int) ([]models.Sermon, error)
	// Method Count returns the number of sermons matching the category filter.
	//
	// Please reference GetLatest method for more information about "category" parameter.
	Count(ctx context.Context, category string) (int, error)
	// Method GetByID retrieves a sermon by its ID.
	//
	// If the sermon does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Sermon, error)
	// Method Create inserts a sermon and returns its ID.
	//
	// If some error occurs during data insert, the error will be returned together with "0" value.
	Create(ctx context.Context, input *models.SermonInput) (int, error)
	// Method Update overwrites a sermon. Updating a missing ID is not an error.
	Update(ctx context.Context, id int, input *models.SermonInput) error
	// Method Delete removes a sermon. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id int) error
}

type sermonService struct {
	repo     SermonRepository
	pageSize int
	logger   *zap.Logger
}

// NewSermonService creates a new sermon service listing models.SermonPageSize sermons per page
func NewSermonService(repo SermonRepository, logger *zap.Logger) *sermonService {
	return &sermonService{
		repo:     repo,
		pageSize: models.SermonPageSize,
		logger:   logger,
	}
}

// PlanListing builds one page of the sermon feed
//
// The newest matching sermon is featured and skipped by the page window, so with a featured sermon
// page N starts at offset (N-1)*pageSize + 1.
// "page" parameter below 1 is treated as 1. "category" parameter is applied to every query; empty means all.
func (s *sermonService) PlanListing(ctx context.Context, page int, category string) (*models.SermonListing, error) {
	if page < 1 {
		page = 1
	}

	featured, err := s.repo.GetLatest(ctx, category)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to get featured sermon: %w", err)
	}

	skip := 0
	if featured != nil {
		skip = 1
	}

	offset := (page-1)*s.pageSize + skip
	items, err := s.repo.List(ctx, category, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sermons: %w", err)
	}
	if items == nil {
		items = []models.Sermon{}
	}

	count, err := s.repo.Count(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to count sermons: %w", err)
	}

	totalPages := (count - skip + s.pageSize - 1) / s.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &models.SermonListing{
		Featured:   featured,
		Items:      items,
		TotalPages: totalPages,
	}, nil
}

// Latest returns the newest sermon of any category, or nil when there is none
func (s *sermonService) Latest(ctx context.Context) (*models.Sermon, error) {
	sermon, err := s.repo.GetLatest(ctx, "")
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return sermon, err
}

// GetByID retrieves a sermon by its ID
func (s *sermonService) GetByID(ctx context.Context, id int) (*models.Sermon, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new sermon, defaulting an empty category
func (s *sermonService) Create(ctx context.Context, input *models.SermonInput) (int, error) {
	withDefaultCategory(input)
	return s.repo.Create(ctx, input)
}

// Update overwrites a sermon, defaulting an empty category
func (s *sermonService) Update(ctx context.Context, id int, input *models.SermonInput) error {
	withDefaultCategory(input)
	return s.repo.Update(ctx, id, input)
}

// Delete removes a sermon
func (s *sermonService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func withDefaultCategory(input *models.SermonInput) {
	if input.Category == "" {
		input.Category = models.DefaultSermonCategory
	}
}
