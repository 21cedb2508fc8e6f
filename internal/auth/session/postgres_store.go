package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// PostgresStore keeps sessions in the sessions table; expired rows are ignored and purged by DeleteExpired
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewPostgresStore creates a new Postgres session store
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Get retrieves a live session by its ID
func (s *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, user_id, username, role, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`

	sess := &Session{}
	err := s.db.QueryRowContext(ctx, query, id, s.now().UTC()).Scan(
		&sess.ID,
		&sess.UserID,
		&sess.Username,
		&sess.Role,
		&sess.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("failed to get session", zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return sess, nil
}

// Set inserts or replaces a session
func (s *PostgresStore) Set(ctx context.Context, session *Session, ttl time.Duration) error {
	session.ExpiresAt = s.now().Add(ttl).UTC()

	query := `
		INSERT INTO sessions (id, user_id, username, role, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id, username = EXCLUDED.username, role = EXCLUDED.role, expires_at = EXCLUDED.expires_at
	`

	_, err := s.db.ExecContext(ctx, query, session.ID, session.UserID, session.Username, session.Role, session.ExpiresAt)
	if err != nil {
		s.logger.Error("failed to store session", zap.Error(err))
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Destroy removes a session
func (s *PostgresStore) Destroy(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteExpired purges expired sessions and returns how many rows were removed
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, s.now().UTC())
	if err != nil {
		s.logger.Error("failed to delete expired sessions", zap.Error(err))
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return deleted, nil
}
