package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"go.uber.org/zap"
)

// ContactMessageRepository is the interface that wraps methods for Contact messages table data access
type ContactMessageRepository interface {
	// Method List retrieves every message, newest first.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.ContactMessage, error)
	// Method GetByID retrieves a message by its ID.
	//
	// If the message does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.ContactMessage, error)
	// Method Create stores a submitted message as unread and returns its ID.
	//
	// If some error occurs during data insert, the error will be returned together with "0" value.
	Create(ctx context.Context, input *models.ContactMessageInput) (int, error)
	// Method SetRead sets the read flag of a message.
	//
	// "read" parameter is the new flag value.
	SetRead(ctx context.Context, id int, read bool) error
	// Method Delete removes a message. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id int) error
}

// ContactNotifier announces new contact messages to the church staff
type ContactNotifier interface {
	// NotifyContact schedules a notification for a stored message
	//
	// "id" parameter is the stored message ID; "input" parameter is the submitted form.
	//
	// If the notification cannot be scheduled, the error will be returned.
	NotifyContact(ctx context.Context, id int, input *models.ContactMessageInput) error
}

type contactService struct {
	repo     ContactMessageRepository
	notifier ContactNotifier
	logger   *zap.Logger
}

// NewContactService creates a new contact service
// "notifier" may be nil, in which case no notification is sent
func NewContactService(repo ContactMessageRepository, notifier ContactNotifier, logger *zap.Logger) *contactService {
	return &contactService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit stores a contact message and schedules a notification
//
// Notification failures are logged and never fail the submission.
func (s *contactService) Submit(ctx context.Context, input *models.ContactMessageInput) (int, error) {
	id, err := s.repo.Create(ctx, input)
	if err != nil {
		return 0, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, id, input); err != nil {
			s.logger.Warn("failed to schedule contact notification", zap.Int("message_id", id), zap.Error(err))
		}
	}

	return id, nil
}

// List retrieves every contact message, newest first
func (s *contactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.List(ctx)
}

// Open retrieves a message for display and marks it read
func (s *contactService) Open(ctx context.Context, id int) (*models.ContactMessage, error) {
	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !message.Read {
		if err := s.repo.SetRead(ctx, id, true); err != nil {
			return nil, fmt.Errorf("failed to mark message as read: %w", err)
		}
		message.Read = true
	}

	return message, nil
}

// ToggleRead flips the read flag of a message; a missing message is ignored
func (s *contactService) ToggleRead(ctx context.Context, id int) error {
	message, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.repo.SetRead(ctx, id, !message.Read)
}

// Delete removes a contact message
func (s *contactService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
