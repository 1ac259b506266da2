package game

import (
	"encoding/json"
	"math/rand"
)

type EventKind int

const (
	EventFootstep EventKind = iota
	EventTeleport
	EventCollected
	EventCaught
	EventGameOver
	EventVictory
)

func (k EventKind) String() string {
	switch k {
	case EventFootstep:
		return "footstep"
	case EventTeleport:
		return "teleport"
	case EventCollected:
		return "collected"
	case EventCaught:
		return "caught"
	case EventGameOver:
		return "game_over"
	case EventVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes EventKind as a string.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Event is a discrete happening that collaborators (audio, effects, text)
// react to. The session itself never waits on them.
type Event struct {
	Kind     EventKind `json:"kind"`
	PageID   int       `json:"page_id,omitempty"`
	Progress int       `json:"progress"`
}

type NarrationKind int

const (
	NarrationFlavor NarrationKind = iota
	NarrationDeathNote
)

// Narration asks the narrative collaborator for a line of text.
type Narration struct {
	Kind     NarrationKind
	Progress int
}

// TickResult is everything a Step produced.
type TickResult struct {
	Events     []Event
	Narrations []Narration
}

func (r *TickResult) emit(kind EventKind, pageID, progress int) {
	r.Events = append(r.Events, Event{Kind: kind, PageID: pageID, Progress: progress})
}

// Session is one run through the forest: the state machine plus every
// component it drives. It is not safe for concurrent use; callers serialize
// whole ticks.
type Session struct {
	tuning  Tuning
	state   SessionState
	outcome Outcome

	player  *Player
	stalker *Stalker
	pages   *Registry
	catch   CatchDetector

	threat     ThreatSample
	bearing    Bearing
	hasBearing bool
	flashlight bool

	elapsed     float64
	caughtTimer float64
}

// NewSession creates a session in the menu. rng feeds the stalker's
// teleports; pass a seeded source for reproducible runs.
func NewSession(t Tuning, rng *rand.Rand) *Session {
	t = t.Sanitize()
	return &Session{
		tuning:  t,
		state:   StateMenu,
		player:  NewPlayer(t),
		stalker: NewStalker(t, rng),
		pages:   NewRegistry(PageLayout[:], t.CollectRadius),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState { return s.state }

// Outcome returns how the last run ended.
func (s *Session) Outcome() Outcome { return s.outcome }

// Progress returns the number of pages collected this run.
func (s *Session) Progress() int { return s.pages.Collected() }

// Intensity returns the current distortion intensity.
func (s *Session) Intensity() float64 { return s.threat.Intensity }

// Threat returns the last threat sample.
func (s *Session) Threat() ThreatSample { return s.threat }

// PlayerPose returns the player's pose.
func (s *Session) PlayerPose() Pose { return s.player.Pose() }

// StalkerPosition returns the stalker's authoritative position.
func (s *Session) StalkerPosition() Vec3 { return s.stalker.Position() }

// Bearing returns the compass reading toward the nearest page.
func (s *Session) Bearing() (Bearing, bool) { return s.bearing, s.hasBearing }

// Flashlight reports whether the flashlight is on.
func (s *Session) Flashlight() bool { return s.flashlight }

// Elapsed returns seconds survived in the current run.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Start begins a fresh run from the menu or from either end screen.
// Every piece of run state is rebuilt before it returns.
func (s *Session) Start() bool {
	if s.state.Running() {
		return false
	}
	s.reset()
	s.state = StatePlaying
	s.outcome = OutcomeNone
	s.flashlight = true
	s.bearing, s.hasBearing = Nearest(s.player.Pose(), s.pages.Active())
	return true
}

// ReturnToMenu abandons a running session or leaves an end screen.
// It reports whether a run in progress was discarded.
func (s *Session) ReturnToMenu() (abandoned bool) {
	if s.state == StateMenu {
		return false
	}
	abandoned = s.state.Running()
	if abandoned {
		s.outcome = OutcomeAbandoned
	}
	s.reset()
	s.state = StateMenu
	return abandoned
}

// ToggleFlashlight flips the flashlight during play.
func (s *Session) ToggleFlashlight() bool {
	if s.state != StatePlaying {
		return s.flashlight
	}
	s.flashlight = !s.flashlight
	return s.flashlight
}

func (s *Session) reset() {
	s.player.Reset()
	s.stalker.Reset()
	s.pages = NewRegistry(PageLayout[:], s.tuning.CollectRadius)
	s.catch.Reset()
	s.threat = ThreatSample{}
	s.bearing, s.hasBearing = Bearing{}, false
	s.flashlight = false
	s.elapsed = 0
	s.caughtTimer = 0
}

// Step advances the simulation by dt seconds. The order of the stages is
// fixed: player, stalker, pages, victory, threat, caught, compass.
func (s *Session) Step(in Input, dt float64) TickResult {
	var res TickResult
	if dt <= 0 {
		return res
	}

	switch s.state {
	case StateCaught:
		s.stepCaught(dt, &res)
		return res
	case StatePlaying:
	default:
		return res
	}

	s.elapsed += dt

	if s.player.Step(in, dt) {
		res.emit(EventFootstep, 0, s.Progress())
	}
	pos := s.player.Pose().Position

	if _, ok := s.stalker.Step(pos, s.Progress(), dt); ok {
		res.emit(EventTeleport, 0, s.Progress())
	}

	before := s.Progress()
	collected := s.pages.Collect(pos)
	for i, ev := range collected {
		progress := before + i + 1
		res.emit(EventCollected, ev.PageID, progress)
		if progress < s.pages.Total() {
			res.Narrations = append(res.Narrations, Narration{Kind: NarrationFlavor, Progress: progress})
		}
	}

	if s.pages.Collected() == s.pages.Total() {
		s.state = StateVictory
		s.outcome = OutcomeVictory
		s.threat = ThreatSample{}
		s.bearing, s.hasBearing = Bearing{}, false
		res.emit(EventVictory, 0, s.Progress())
		return res
	}

	s.threat = s.tuning.Assess(s.player.Pose(), s.stalker.Position(), s.Progress())

	if s.catch.Update(s.threat.InReach) {
		s.state = StateCaught
		s.caughtTimer = 0
		res.emit(EventCaught, 0, s.Progress())
		return res
	}

	s.bearing, s.hasBearing = Nearest(s.player.Pose(), s.pages.Active())
	return res
}

// stepCaught holds the jumpscare: input is ignored and nothing else moves.
func (s *Session) stepCaught(dt float64, res *TickResult) {
	s.caughtTimer += dt
	if s.caughtTimer < s.tuning.JumpscareDuration.Seconds() {
		return
	}
	s.state = StateGameOver
	s.outcome = OutcomeCaught
	res.emit(EventGameOver, 0, s.Progress())
	res.Narrations = append(res.Narrations, Narration{Kind: NarrationDeathNote, Progress: s.Progress()})
}

// Snapshot is the per-tick view handed to renderers.
type Snapshot struct {
	State      SessionState `json:"state"`
	Progress   int          `json:"progress"`
	TotalPages int          `json:"total_pages"`
	Player     Pose         `json:"player"`
	Stalker    Vec3         `json:"stalker"`
	Jitter     Vec3         `json:"jitter"`
	Pages      []Page       `json:"pages"`
	Intensity  float64      `json:"intensity"`
	Visible    bool         `json:"visible"`
	Bearing    *Bearing     `json:"bearing,omitempty"`
	Flashlight bool         `json:"flashlight"`
	Elapsed    float64      `json:"elapsed"`
}

// Snapshot captures the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.state,
		Progress:   s.Progress(),
		TotalPages: s.pages.Total(),
		Player:     s.player.Pose(),
		Stalker:    s.stalker.Position(),
		Jitter:     Jitter(s.elapsed),
		Pages:      s.pages.Active(),
		Intensity:  s.threat.Intensity,
		Visible:    s.threat.Visible,
		Flashlight: s.flashlight,
		Elapsed:    s.elapsed,
	}
	if s.hasBearing {
		b := s.bearing
		snap.Bearing = &b
	}
	return snap
}
