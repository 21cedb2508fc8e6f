// Package tasks defines the background jobs exchanged between the web server and the worker
package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/egliseduberger/website/internal/models"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeContactNotification is the asynq task type for new contact message alerts
const TypeContactNotification = "contact:notify"

// QueueNotifications is the queue contact notifications are enqueued on
const QueueNotifications = "notifications"

// ContactNotificationPayload is the JSON body of a contact notification task
type ContactNotificationPayload struct {
	MessageID int    `json:"message_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// NewContactNotificationTask builds the task announcing a stored contact message
func NewContactNotificationTask(id int, input *models.ContactMessageInput) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactNotificationPayload{
		MessageID: id,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact notification: %w", err)
	}
	return asynq.NewTask(TypeContactNotification, payload), nil
}

// ParseContactNotification decodes the payload of a contact notification task
func ParseContactNotification(t *asynq.Task) (*ContactNotificationPayload, error) {
	var p ContactNotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contact notification: %w", err)
	}
	return &p, nil
}

// Enqueuer is the part of asynq.Client used to queue tasks
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqNotifier queues contact notifications for the worker
type AsynqNotifier struct {
	client Enqueuer
	logger *zap.Logger
}

// NewAsynqNotifier creates a notifier backed by an asynq client
func NewAsynqNotifier(client Enqueuer, logger *zap.Logger) *AsynqNotifier {
	return &AsynqNotifier{
		client: client,
		logger: logger,
	}
}

// NotifyContact enqueues a notification for the stored contact message
func (n *AsynqNotifier) NotifyContact(ctx context.Context, id int, input *models.ContactMessageInput) error {
	task, err := NewContactNotificationTask(id, input)
	if err != nil {
		return err
	}

	info, err := n.client.EnqueueContext(ctx, task, asynq.Queue(QueueNotifications), asynq.MaxRetry(5))
	if err != nil {
		n.logger.Error("failed to enqueue contact notification", zap.Int("message_id", id), zap.Error(err))
		return fmt.Errorf("failed to enqueue contact notification: %w", err)
	}

	n.logger.Debug("contact notification enqueued", zap.Int("message_id", id), zap.String("task_id", info.ID))
	return nil
}

// NoopNotifier discards notifications, used when no queue is configured
type NoopNotifier struct{}

// NotifyContact does nothing
func (NoopNotifier) NotifyContact(ctx context.Context, id int, input *models.ContactMessageInput) error {
	return nil
}
