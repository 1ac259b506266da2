// Package narrative produces the short lines of text shown when a page is
// found or the player is caught. Every call resolves to some string: when no
// text service is configured or it fails, a fixed fallback line is used.
package narrative

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ugaemi/eightpages-server/internal/game"
)

// Objective is shown when a run starts.
const Objective = "FIND THE 8 PAGES"

// FallbackLines are used when no text service can answer.
var FallbackLines = [8]string{
	"HE IS BEHIND YOU.",
	"RUN WHILE YOU CAN.",
	"DON'T LOOK BACK.",
	"YOU ARE NEXT.",
	"HE SEES YOU.",
	"IT IS GETTING LATE.",
	"THE FOREST IS HUNGRY.",
	"SILENCE IS THE END.",
}

const (
	fallbackDeathNote = "YOU WILL NEVER LEAVE THIS PLACE."
	failedDeathNote   = "GAME OVER."
)

// Narrator returns flavor text. Implementations must never fail; they fall
// back to static text instead.
type Narrator interface {
	Flavor(ctx context.Context, progress int) string
	DeathNote(ctx context.Context) string
}

// FallbackFlavor returns the static line for the given progress.
func FallbackFlavor(progress int) string {
	if progress < 0 {
		progress = -progress
	}
	return FallbackLines[progress%len(FallbackLines)]
}

// Static is a Narrator that only uses the fallback lines.
type Static struct{}

func (Static) Flavor(_ context.Context, progress int) string {
	return FallbackFlavor(progress)
}

func (Static) DeathNote(_ context.Context) string {
	return fallbackDeathNote
}

// Dispatcher runs narration requests in the background so the tick loop
// never waits on a text service.
type Dispatcher struct {
	narrator Narrator
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher. A nil narrator means Static.
func NewDispatcher(n Narrator, timeout time.Duration) *Dispatcher {
	if n == nil {
		n = Static{}
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Dispatcher{narrator: n, timeout: timeout}
}

// Request resolves req in a new goroutine and passes the text to deliver.
func (d *Dispatcher) Request(req game.Narration, deliver func(text string)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		var text string
		switch req.Kind {
		case game.NarrationDeathNote:
			text = d.narrator.DeathNote(ctx)
		default:
			text = d.narrator.Flavor(ctx, req.Progress)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			slog.Debug("narrator returned empty text", "kind", req.Kind, "progress", req.Progress)
			text = Static{}.Flavor(ctx, req.Progress)
			if req.Kind == game.NarrationDeathNote {
				text = failedDeathNote
			}
		}
		deliver(text)
	}()
}

// Wait blocks until every outstanding request has been delivered.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
