package room

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/ugaemi/eightpages-server/internal/game"
	"github.com/ugaemi/eightpages-server/internal/narrative"
	"github.com/ugaemi/eightpages-server/internal/store"
	"github.com/ugaemi/eightpages-server/internal/ws"
)

const recordTimeout = 5 * time.Second

// Options configures every room a Manager creates.
type Options struct {
	Tuning       game.Tuning
	TickInterval time.Duration
	Runs         store.RunStore
	Narration    *narrative.Dispatcher
	// Seed fixes the stalker's random source. Zero means time-seeded.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = game.TickInterval
	}
	if o.Narration == nil {
		o.Narration = narrative.NewDispatcher(nil, 0)
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Room hosts a single player's session and drives its tick loop.
type Room struct {
	Code     string
	ClientID string

	client  *ws.Client
	session *game.Session
	opts    Options

	// Latest movement axes plus look deltas accumulated since the last tick.
	input game.Input

	stopCh  chan struct{}
	running bool
	// run changes on every start and stop; narration tagged with an older
	// value is dropped.
	run uint64

	mu sync.Mutex
}

// NewRoom creates a room in the menu for the given client.
func NewRoom(code string, client *ws.Client, opts Options) *Room {
	opts = opts.withDefaults()
	return &Room{
		Code:     code,
		ClientID: client.ID,
		client:   client,
		session:  game.NewSession(opts.Tuning, rand.New(rand.NewSource(opts.Seed))),
		opts:     opts,
	}
}

// Summary is the room_info payload.
type Summary struct {
	Code       string            `json:"code"`
	State      game.SessionState `json:"state"`
	Outcome    game.Outcome      `json:"outcome"`
	Progress   int               `json:"progress"`
	TotalPages int               `json:"total_pages"`
}

type narrationMessage struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Info describes the room for room_info messages.
func (r *Room) Info() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.infoLocked()
}

func (r *Room) infoLocked() Summary {
	return Summary{
		Code:       r.Code,
		State:      r.session.State(),
		Outcome:    r.session.Outcome(),
		Progress:   r.session.Progress(),
		TotalPages: game.TotalPages,
	}
}

// SendInfo pushes the current room_info to the client.
func (r *Room) SendInfo() {
	msg, _ := ws.NewMessage(ws.TypeRoomInfo, r.Info())
	r.client.SendMessage(msg)
}

// State returns the session state.
func (r *Room) State() game.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.State()
}

// Start begins a run and its tick loop. It returns false while a run is
// already in progress.
func (r *Room) Start() bool {
	stopCh, ok := r.begin()
	if !ok {
		return false
	}
	r.SendInfo()
	r.sendNarration("objective", narrative.Objective)
	go r.gameLoop(stopCh)
	slog.Info("session started", "room", r.Code)
	return true
}

func (r *Room) begin() (chan struct{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.session.Start() {
		return nil, false
	}
	r.input = game.Input{}
	r.run++
	r.stopCh = make(chan struct{})
	r.running = true
	return r.stopCh, true
}

// SetInput replaces the movement axes and adds the look deltas to whatever
// the next tick has not consumed yet.
func (r *Room) SetInput(in game.Input) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lookX, lookY := r.input.LookX, r.input.LookY
	if in.LookSource != r.input.LookSource {
		lookX, lookY = 0, 0
	}
	r.input = in
	r.input.LookX += lookX
	r.input.LookY += lookY
}

// ToggleFlashlight flips the flashlight and returns the new setting.
func (r *Room) ToggleFlashlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.ToggleFlashlight()
}

// ReturnToMenu stops the run, records it as abandoned if it was still
// running and puts the session back in the menu.
func (r *Room) ReturnToMenu() {
	r.mu.Lock()
	if r.session.State() == game.StateMenu {
		r.mu.Unlock()
		return
	}
	progress, elapsed := r.session.Progress(), r.session.Elapsed()
	abandoned := r.session.ReturnToMenu()
	r.run++
	r.stopLocked()
	r.mu.Unlock()

	if abandoned {
		r.record(game.OutcomeAbandoned, progress, elapsed)
		slog.Info("session abandoned", "room", r.Code, "progress", progress)
	}
	r.SendInfo()
}

// Close stops the loop for good, recording a run still in progress.
func (r *Room) Close() {
	r.mu.Lock()
	running := r.session.State().Running()
	progress, elapsed := r.session.Progress(), r.session.Elapsed()
	if running {
		r.session.ReturnToMenu()
	}
	r.run++
	r.stopLocked()
	r.mu.Unlock()

	if running {
		r.record(game.OutcomeAbandoned, progress, elapsed)
	}
}

// stopLocked signals the game loop to stop. Caller must hold r.mu.
func (r *Room) stopLocked() {
	if !r.running {
		return
	}
	r.running = false
	close(r.stopCh)
}

// gameLoop runs the session at the configured tick interval until the run
// ends or the room is stopped.
func (r *Room) gameLoop(stopCh chan struct{}) {
	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !r.tick(stopCh) {
				return
			}
		}
	}
}

// tick advances the session by one fixed step, publishes the result and
// reports whether the loop should keep going.
func (r *Room) tick(stopCh chan struct{}) bool {
	r.mu.Lock()
	select {
	case <-stopCh:
		r.mu.Unlock()
		return false
	default:
	}

	in := r.input
	r.input.LookX, r.input.LookY = 0, 0
	run := r.run

	res := r.session.Step(in, r.opts.TickInterval.Seconds())
	snap := r.session.Snapshot()
	state := r.session.State()
	outcome := r.session.Outcome()
	ended := state.Terminal()
	if ended {
		r.stopLocked()
	}
	r.mu.Unlock()

	msg, _ := ws.NewMessage(ws.TypeGameState, snap)
	r.client.SendMessage(msg)

	for _, ev := range res.Events {
		evMsg, _ := ws.NewMessage(ws.TypeEvent, ev)
		r.client.SendMessage(evMsg)
		if ev.Kind != game.EventFootstep {
			slog.Debug("session event", "room", r.Code, "kind", ev.Kind, "page", ev.PageID, "progress", ev.Progress)
		}
	}
	for _, n := range res.Narrations {
		kind := "flavor"
		if n.Kind == game.NarrationDeathNote {
			kind = "death_note"
		}
		r.opts.Narration.Request(n, func(text string) {
			r.deliverNarration(run, kind, text)
		})
	}

	if ended {
		r.record(outcome, snap.Progress, snap.Elapsed)
		r.SendInfo()
		slog.Info("session ended", "room", r.Code, "outcome", outcome, "progress", snap.Progress)
		return false
	}
	return true
}

// deliverNarration sends text resolved for the given run, unless the room
// has since been restarted, sent to the menu or closed.
func (r *Room) deliverNarration(run uint64, kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.run != run {
		slog.Debug("dropping stale narration", "room", r.Code, "kind", kind)
		return
	}
	r.sendNarration(kind, text)
}

func (r *Room) sendNarration(kind, text string) {
	msg, _ := ws.NewMessage(ws.TypeNarration, narrationMessage{Kind: kind, Text: text})
	r.client.SendMessage(msg)
}

func (r *Room) record(outcome game.Outcome, progress int, elapsed float64) {
	if r.opts.Runs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	run := store.NewRun(r.Code, outcome, progress, elapsed)
	if err := r.opts.Runs.Record(ctx, run); err != nil {
		slog.Error("failed to record run", "room", r.Code, "error", err)
	}
}
