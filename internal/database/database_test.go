package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_Paired(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		assert.Contains(t, downs, down)
	}
}

func TestMigrationFiles_Tables(t *testing.T) {
	var all strings.Builder
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	for _, up := range ups {
		content, err := fs.ReadFile(migrationFiles, up)
		require.NoError(t, err)
		all.Write(content)
	}

	for _, table := range []string{
		"users", "sermons", "events", "ministries", "team_members",
		"church_values", "house_groups", "faqs", "contact_messages", "sessions",
	} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" ", table)
	}
	assert.Contains(t, all.String(), "category VARCHAR(50) DEFAULT 'Enseignements'")
}

func TestMigrationSource(t *testing.T) {
	source, err := iofs.New(migrationFiles, "migrations")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}

func TestConnect_InvalidDSN(t *testing.T) {
	db, err := Connect("postgres://user@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	assert.Nil(t, db)
	assert.Error(t, err)
}
