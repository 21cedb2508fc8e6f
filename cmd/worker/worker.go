package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/egliseduberger/website/internal/tasks"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// purgeTimeout bounds one expired-session purge
const purgeTimeout = time.Minute

var contactEmailTemplate = template.Must(template.New("contact").Parse(`<p>Nouveau message reçu via le formulaire de contact.</p>
<p><strong>De :</strong> {{.FirstName}} {{.LastName}} &lt;{{.Email}}&gt;</p>
<p><strong>Sujet :</strong> {{if .Subject}}{{.Subject}}{{else}}(sans sujet){{end}}</p>
<p>{{.Message}}</p>
<p>Message n° {{.MessageID}}, à consulter dans la boîte de réception du site.</p>
`))

// MailSender is the interface that wraps the delivery of e-mails
type MailSender interface {
	// DialAndSend opens a connection to the SMTP server, sends the given e-mails and closes the connection.
	//
	// If some error occurs during delivery, the error will be returned.
	DialAndSend(m ...*mail.Message) error
}

// ExpiredSessionPurger is the interface that wraps the removal of expired sessions
type ExpiredSessionPurger interface {
	// DeleteExpired removes expired sessions and returns how many were removed.
	//
	// If some error occurs during data delete, the error will be returned together with 0 value.
	DeleteExpired(ctx context.Context) (int64, error)
}

// Worker handles task processing
type Worker struct {
	logger       *zap.Logger
	sender       MailSender
	sessions     ExpiredSessionPurger
	smtpFrom     string
	contactEmail string
}

// NewWorker creates a new worker instance
// "sessions" may be nil when sessions are not kept in Postgres
func NewWorker(logger *zap.Logger, sender MailSender, sessions ExpiredSessionPurger, smtpFrom, contactEmail string) *Worker {
	return &Worker{
		logger:       logger,
		sender:       sender,
		sessions:     sessions,
		smtpFrom:     smtpFrom,
		contactEmail: contactEmail,
	}
}

// HandleContactNotification e-mails the church staff about a new contact form submission
// A malformed payload is not retried; a delivery failure is returned so the queue retries it
func (w *Worker) HandleContactNotification(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseContactNotification(t)
	if err != nil {
		w.logger.Error("invalid contact notification payload", zap.Error(err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	if w.contactEmail == "" {
		w.logger.Warn("contact notification dropped, no recipient configured", zap.Int("message_id", payload.MessageID))
		return nil
	}

	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, payload); err != nil {
		return fmt.Errorf("failed to render contact notification: %w", err)
	}

	subject := "Nouveau message de contact"
	if payload.Subject != "" {
		subject += " : " + payload.Subject
	}

	if err := w.sendEmail(w.contactEmail, payload.Email, subject, body.String()); err != nil {
		w.logger.Error("failed to send contact notification",
			zap.Int("message_id", payload.MessageID),
			zap.Error(err),
		)
		return err
	}

	w.logger.Info("contact notification sent", zap.Int("message_id", payload.MessageID))
	return nil
}

// PurgeExpiredSessions removes expired sessions; errors are logged since it runs from cron
func (w *Worker) PurgeExpiredSessions() {
	if w.sessions == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	deleted, err := w.sessions.DeleteExpired(ctx)
	if err != nil {
		w.logger.Error("failed to purge expired sessions", zap.Error(err))
		return
	}

	w.logger.Info("expired sessions purged", zap.Int64("deleted", deleted))
}

// sendEmail sends an email using gopkg.in/mail.v2
func (w *Worker) sendEmail(to, replyTo, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := w.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
