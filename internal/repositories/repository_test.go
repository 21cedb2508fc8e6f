package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestDB creates a mock database and a development logger
func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, logger, cleanup
}

func TestNewRepositories(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	db := &sql.DB{}

	users := NewUserRepository(db, logger)
	assert.Equal(t, db, users.db)
	assert.Equal(t, logger, users.logger)

	sermons := NewSermonRepository(db, logger)
	assert.Equal(t, db, sermons.db)
	assert.Equal(t, logger, sermons.logger)

	assert.NotNil(t, NewEventRepository(db, logger))
	assert.NotNil(t, NewMinistryRepository(db, logger))
	assert.NotNil(t, NewHouseGroupRepository(db, logger))
	assert.NotNil(t, NewTeamMemberRepository(db, logger))
	assert.NotNil(t, NewChurchValueRepository(db, logger))
	assert.NotNil(t, NewFAQRepository(db, logger))
	assert.NotNil(t, NewContactMessageRepository(db, logger))
}

func TestDisplayOrder(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "empty becomes zero", value: "", expected: "0"},
		{name: "number kept", value: "3", expected: "3"},
		{name: "malformed value passed through", value: "abc", expected: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, displayOrder(tt.value))
		})
	}
}
