package narrative

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/eightpages-server/internal/game"
)

type fakeCompleter struct {
	text    string
	err     error
	prompts []string
	mu      sync.Mutex
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func TestFallbackFlavor(t *testing.T) {
	tests := []struct {
		progress int
		want     string
	}{
		{0, FallbackLines[0]},
		{1, FallbackLines[1]},
		{7, FallbackLines[7]},
		{8, FallbackLines[0]},
		{-3, FallbackLines[3]},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FallbackFlavor(tt.progress), "progress %d", tt.progress)
	}
}

func TestStatic(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, FallbackLines[2], Static{}.Flavor(ctx, 2))
	assert.Equal(t, fallbackDeathNote, Static{}.DeathNote(ctx))
}

func TestNewOpenAINarrator_NoKey(t *testing.T) {
	n := NewOpenAINarrator("  ", "gpt-4o-mini")
	assert.IsType(t, Static{}, n)
}

func TestOpenAINarrator_Flavor(t *testing.T) {
	llm := &fakeCompleter{text: "THE TREES REMEMBER."}
	n := &OpenAINarrator{llm: llm}

	assert.Equal(t, "THE TREES REMEMBER.", n.Flavor(context.Background(), 3))
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "3 of 8 pages")
}

func TestOpenAINarrator_FallsBackOnError(t *testing.T) {
	n := &OpenAINarrator{llm: &fakeCompleter{err: errors.New("boom")}}
	ctx := context.Background()

	assert.Equal(t, FallbackLines[5], n.Flavor(ctx, 5))
	assert.Equal(t, failedDeathNote, n.DeathNote(ctx))
}

func TestDispatcher_Request(t *testing.T) {
	tests := []struct {
		name string
		n    Narrator
		req  game.Narration
		want string
	}{
		{
			name: "flavor",
			n:    &OpenAINarrator{llm: &fakeCompleter{text: "  HE WAITS.  "}},
			req:  game.Narration{Kind: game.NarrationFlavor, Progress: 2},
			want: "HE WAITS.",
		},
		{
			name: "death note",
			n:    &OpenAINarrator{llm: &fakeCompleter{text: "NO ONE HEARD YOU."}},
			req:  game.Narration{Kind: game.NarrationDeathNote},
			want: "NO ONE HEARD YOU.",
		},
		{
			name: "empty flavor falls back",
			n:    &OpenAINarrator{llm: &fakeCompleter{}},
			req:  game.Narration{Kind: game.NarrationFlavor, Progress: 4},
			want: FallbackLines[4],
		},
		{
			name: "nil narrator is static",
			n:    nil,
			req:  game.Narration{Kind: game.NarrationDeathNote},
			want: fallbackDeathNote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.n, time.Second)
			got := make(chan string, 1)
			d.Request(tt.req, func(text string) { got <- text })
			d.Wait()

			select {
			case text := <-got:
				assert.Equal(t, tt.want, text)
			default:
				t.Fatal("nothing delivered")
			}
		})
	}
}

type slowNarrator struct{}

func (slowNarrator) Flavor(ctx context.Context, progress int) string {
	<-ctx.Done()
	return FallbackFlavor(progress)
}

func (slowNarrator) DeathNote(ctx context.Context) string {
	<-ctx.Done()
	return ""
}

func TestDispatcher_Timeout(t *testing.T) {
	d := NewDispatcher(slowNarrator{}, 20*time.Millisecond)
	got := make(chan string, 1)
	d.Request(game.Narration{Kind: game.NarrationDeathNote}, func(text string) { got <- text })
	d.Wait()

	assert.Equal(t, failedDeathNote, <-got)
}
