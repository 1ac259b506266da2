package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/eightpages-server/internal/game"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)

	// Clean up runs table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM runs")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPostgresStore(t *testing.T) {
	exerciseRunStore(t, setupTestStore(t))
}

func TestPostgresStore_DuplicateID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := NewRun("ABCD", game.OutcomeCaught, 2, 40)
	require.NoError(t, s.Record(ctx, run))
	assert.Error(t, s.Record(ctx, run))
}

func TestNewPostgresStore_BadURL(t *testing.T) {
	_, err := NewPostgresStore(context.Background(), "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	assert.Error(t, err)
}
