package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/eightpages-server/internal/game"
)

func runAt(code string, outcome game.Outcome, pages int, at time.Time) Run {
	run := NewRun(code, outcome, pages, float64(pages)*12.5)
	run.EndedAt = at
	return run
}

// exerciseRunStore runs the behavior every RunStore must share.
func exerciseRunStore(t *testing.T, s RunStore) {
	t.Helper()
	ctx := context.Background()

	runs, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, runs)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first := runAt("ABCD", game.OutcomeCaught, 3, base)
	second := runAt("EFGH", game.OutcomeVictory, 8, base.Add(time.Minute))
	third := runAt("IJKL", game.OutcomeAbandoned, 0, base.Add(2*time.Minute))
	for _, r := range []Run{first, second, third} {
		require.NoError(t, s.Record(ctx, r))
	}

	runs, err = s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, third.ID, runs[0].ID, "newest first")
	assert.Equal(t, second.ID, runs[1].ID)

	got := runs[1]
	assert.Equal(t, "EFGH", got.RoomCode)
	assert.Equal(t, game.OutcomeVictory, got.Outcome)
	assert.Equal(t, 8, got.Pages)
	assert.InDelta(t, 100.0, got.Survived, 1e-9)
	assert.True(t, second.EndedAt.Equal(got.EndedAt))

	runs, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3, "non-positive limit uses the default")
}

func TestMemoryStore(t *testing.T) {
	exerciseRunStore(t, NewMemoryStore(10))
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record(ctx, runAt("ROOM", game.OutcomeCaught, i, base.Add(time.Duration(i)*time.Second))))
	}

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Pages)
	assert.Equal(t, 1, runs[1].Pages)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exerciseRunStore(t, s)
}

func TestSQLiteStore_PersistsToFile(t *testing.T) {
	path := t.TempDir() + "/runs.db"
	ctx := context.Background()

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	run := NewRun("WXYZ", game.OutcomeVictory, 8, 321)
	require.NoError(t, s.Record(ctx, run))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	s, err := Open(context.Background(), "", "")
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &MemoryStore{}, s)
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-1, DefaultRecent},
		{0, DefaultRecent},
		{3, 3},
		{MaxRecent + 1, MaxRecent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeLimit(tt.in))
	}
}
