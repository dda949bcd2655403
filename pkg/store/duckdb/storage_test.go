package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootstrapsSchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO runs (id, property, range_start, range_end) VALUES (?, ?, ?, ?)`,
		"run-001", "272846783", "2026-01-01", "2026-01-15",
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO traffic_rows (run_id, axis, dimension, seq, sessions) VALUES (?, ?, ?, ?, ?)`,
		"run-001", "deviceCategory", "desktop", 0, 8000.0,
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM traffic_rows WHERE run_id = ?", "run-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
