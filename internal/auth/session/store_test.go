package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestSession_CurrentUser(t *testing.T) {
	tests := []struct {
		name     string
		session  *Session
		expected bool
	}{
		{name: "nil session", session: nil, expected: false},
		{name: "empty user id", session: &Session{ID: "abc", Username: "admin"}, expected: false},
		{name: "signed in", session: &Session{ID: "abc", UserID: 1, Username: "admin", Role: "admin"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.session.Authenticated())
			user := tt.session.CurrentUser()
			if tt.expected {
				require.NotNil(t, user)
				assert.Equal(t, tt.session.UserID, user.ID)
				assert.Equal(t, tt.session.Username, user.Username)
				assert.Equal(t, tt.session.Role, user.Role)
			} else {
				assert.Nil(t, user)
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := fixedNow
	store.now = func() time.Time { return now }

	sess := &Session{ID: "abc", UserID: 1, Username: "admin", Role: "admin"}
	require.NoError(t, store.Set(ctx, sess, time.Hour))
	assert.Equal(t, fixedNow.Add(time.Hour), sess.ExpiresAt)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	// mutating the returned copy leaves the stored entry untouched
	got.UserID = 99
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, again.UserID)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	now = fixedNow.Add(time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Set(ctx, &Session{ID: "def", UserID: 2}, time.Hour))
	require.NoError(t, store.Destroy(ctx, "def"))
	require.NoError(t, store.Destroy(ctx, "never-existed"))
	_, err = store.Get(ctx, "def")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore(t *testing.T) {
	ttl := 24 * time.Hour
	stored := Session{ID: "abc", UserID: 1, Username: "admin", Role: "admin", ExpiresAt: fixedNow.Add(ttl)}
	data, err := json.Marshal(stored)
	require.NoError(t, err)

	tests := []struct {
		name      string
		setupMock func(mock redismock.ClientMock)
		run       func(t *testing.T, store *RedisStore)
	}{
		{
			name: "set",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectSet("session:abc", string(data), ttl).SetVal("OK")
			},
			run: func(t *testing.T, store *RedisStore) {
				sess := &Session{ID: "abc", UserID: 1, Username: "admin", Role: "admin"}
				require.NoError(t, store.Set(context.Background(), sess, ttl))
				assert.True(t, stored.ExpiresAt.Equal(sess.ExpiresAt))
			},
		},
		{
			name: "set error",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectSet("session:abc", string(data), ttl).SetErr(errors.New("connection refused"))
			},
			run: func(t *testing.T, store *RedisStore) {
				sess := &Session{ID: "abc", UserID: 1, Username: "admin", Role: "admin"}
				assert.Error(t, store.Set(context.Background(), sess, ttl))
			},
		},
		{
			name: "get",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectGet("session:abc").SetVal(string(data))
			},
			run: func(t *testing.T, store *RedisStore) {
				sess, err := store.Get(context.Background(), "abc")
				require.NoError(t, err)
				assert.Equal(t, 1, sess.UserID)
				assert.Equal(t, "admin", sess.Username)
				assert.True(t, stored.ExpiresAt.Equal(sess.ExpiresAt))
			},
		},
		{
			name: "get missing key",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectGet("session:gone").RedisNil()
			},
			run: func(t *testing.T, store *RedisStore) {
				_, err := store.Get(context.Background(), "gone")
				assert.ErrorIs(t, err, ErrSessionNotFound)
			},
		},
		{
			name: "get corrupted value",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectGet("session:abc").SetVal("{not json")
			},
			run: func(t *testing.T, store *RedisStore) {
				_, err := store.Get(context.Background(), "abc")
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrSessionNotFound)
			},
		},
		{
			name: "destroy",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectDel("session:abc").SetVal(1)
			},
			run: func(t *testing.T, store *RedisStore) {
				assert.NoError(t, store.Destroy(context.Background(), "abc"))
			},
		},
		{
			name: "destroy error",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectDel("session:abc").SetErr(errors.New("connection refused"))
			},
			run: func(t *testing.T, store *RedisStore) {
				assert.Error(t, store.Destroy(context.Background(), "abc"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			store := NewRedisStore(client, zap.NewNop())
			store.now = func() time.Time { return fixedNow }

			tt.setupMock(mock)
			tt.run(t, store)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db, zap.NewNop())
	store.now = func() time.Time { return fixedNow }
	expiresAt := fixedNow.Add(time.Hour)

	mock.ExpectExec(`INSERT INTO sessions \(id, user_id, username, role, expires_at\)`).
		WithArgs("abc", 1, "admin", "admin", expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id, user_id, username, role, expires_at FROM sessions WHERE id = \$1 AND expires_at > \$2`).
		WithArgs("abc", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "role", "expires_at"}).
			AddRow("abc", 1, "admin", "admin", expiresAt))
	mock.ExpectQuery(`SELECT (.+) FROM sessions`).
		WithArgs("expired", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "role", "expires_at"}))
	mock.ExpectQuery(`SELECT (.+) FROM sessions`).
		WithArgs("abc", fixedNow).
		WillReturnError(errors.New("database error"))
	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at <= \$1`).
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM sessions WHERE expires_at <= \$1`).
		WithArgs(fixedNow).
		WillReturnError(errors.New("database error"))

	sess := &Session{ID: "abc", UserID: 1, Username: "admin", Role: "admin"}
	require.NoError(t, store.Set(ctx, sess, time.Hour))
	assert.Equal(t, expiresAt, sess.ExpiresAt)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	_, err = store.Get(ctx, "expired")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = store.Get(ctx, "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Destroy(ctx, "abc"))

	deleted, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	_, err = store.DeleteExpired(ctx)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
