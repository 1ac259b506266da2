package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/eightpages-server/internal/game"
)

const (
	// DefaultRecent is used when a caller asks for a non-positive number of runs.
	DefaultRecent = 10
	// MaxRecent caps a single history query.
	MaxRecent = 50
)

// Run is the summary of one finished or abandoned run.
type Run struct {
	ID       uuid.UUID    `json:"id"`
	RoomCode string       `json:"room_code"`
	Outcome  game.Outcome `json:"outcome"`
	Pages    int          `json:"pages"`
	Survived float64      `json:"survived_seconds"`
	EndedAt  time.Time    `json:"ended_at"`
}

// NewRun creates a run summary stamped with a fresh ID and the current time.
func NewRun(roomCode string, outcome game.Outcome, pages int, survived float64) Run {
	return Run{
		ID:       uuid.New(),
		RoomCode: roomCode,
		Outcome:  outcome,
		Pages:    pages,
		Survived: survived,
		EndedAt:  time.Now().UTC(),
	}
}

// RunStore defines the interface for run history storage.
type RunStore interface {
	// Record saves a run summary.
	Record(ctx context.Context, run Run) error
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)
	// Close releases storage resources.
	Close() error
}

// Open picks a store: Postgres when databaseURL is set, else SQLite when
// sqlitePath is set, else memory.
func Open(ctx context.Context, databaseURL, sqlitePath string) (RunStore, error) {
	switch {
	case databaseURL != "":
		s, err := NewPostgresStore(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("run history backed by postgres")
		return s, nil
	case sqlitePath != "":
		s, err := NewSQLiteStore(ctx, sqlitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("run history backed by sqlite", "path", sqlitePath)
		return s, nil
	default:
		slog.Info("run history kept in memory")
		return NewMemoryStore(MaxRecent), nil
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecent
	}
	if limit > MaxRecent {
		return MaxRecent
	}
	return limit
}
