package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB migrated once; a second run must be a no-op.
	require.NoError(t, Migrate(database))

	for _, table := range []string{"works", "work_units", "stages", "granularities", "snapshots", "snapshot_counts"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestOpenDB_EnforcesStatusCheck(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO works (id, title, status, created_at, updated_at) VALUES ('w1', 'x', 'bogus', '', '')`,
	)
	assert.Error(t, err)
}
