// Package audio synthesizes the game's sound cues with beep.
package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/ugaemi/eightpages-server/internal/game"
)

// SampleRate is used for every cue.
const SampleRate = beep.SampleRate(44100)

// Cue is a named sound.
type Cue int

const (
	CueFootstep Cue = iota
	CueCollect
	CueTeleport
	CueJumpscare
	CueAmbience
)

func (c Cue) String() string {
	switch c {
	case CueFootstep:
		return "footstep"
	case CueCollect:
		return "collect"
	case CueTeleport:
		return "teleport"
	case CueJumpscare:
		return "jumpscare"
	case CueAmbience:
		return "ambience"
	default:
		return "unknown"
	}
}

// Cue lengths.
const (
	FootstepLength  = 150 * time.Millisecond
	CollectLength   = 600 * time.Millisecond
	TeleportLength  = 250 * time.Millisecond
	JumpscareLength = game.JumpscareDuration
	AmbienceLength  = 4 * time.Second
)

// CueForEvent maps a session event to the cue it should play.
func CueForEvent(kind game.EventKind) (Cue, bool) {
	switch kind {
	case game.EventFootstep:
		return CueFootstep, true
	case game.EventCollected:
		return CueCollect, true
	case game.EventTeleport:
		return CueTeleport, true
	case game.EventCaught:
		return CueJumpscare, true
	default:
		return 0, false
	}
}

// Synth builds cue streams.
type Synth struct {
	rate beep.SampleRate
	rng  *rand.Rand
}

// NewSynth creates a synth; rng drives the noise generators.
func NewSynth(rate beep.SampleRate, rng *rand.Rand) *Synth {
	return &Synth{rate: rate, rng: rng}
}

// Stream returns a fresh finite stream for the cue.
func (s *Synth) Stream(c Cue) beep.Streamer {
	switch c {
	case CueFootstep:
		return s.footstep()
	case CueCollect:
		return s.collect()
	case CueTeleport:
		return s.teleport()
	case CueJumpscare:
		return s.jumpscare()
	case CueAmbience:
		return s.ambience()
	default:
		return nil
	}
}

// Length returns the number of samples the cue produces.
func (s *Synth) Length(c Cue) int {
	switch c {
	case CueFootstep:
		return s.rate.N(FootstepLength)
	case CueCollect:
		return s.rate.N(CollectLength)
	case CueTeleport:
		return s.rate.N(TeleportLength)
	case CueJumpscare:
		return s.rate.N(JumpscareLength)
	case CueAmbience:
		return s.rate.N(AmbienceLength)
	default:
		return 0
	}
}

// A dull thud on leaves: a low sine dropping in pitch with a little crunch.
func (s *Synth) footstep() beep.Streamer {
	thud := newTone(60, 40, FootstepLength, WaveSine, s.rate, s.rng)
	crunch := newTone(0, 0, FootstepLength, WaveNoise, s.rate, s.rng)
	return gain(beep.Mix(
		newDecay(thud, FootstepLength, 5*time.Millisecond, 40*time.Millisecond, s.rate),
		gain(newDecay(crunch, FootstepLength, 2*time.Millisecond, 15*time.Millisecond, s.rate), 0.25),
	), 0.5)
}

// Paper rustle followed by a faint low chord.
func (s *Synth) collect() beep.Streamer {
	rustle := newTone(0, 0, 150*time.Millisecond, WaveNoise, s.rate, s.rng)
	chordLen := CollectLength - 150*time.Millisecond
	low := newTone(110, 110, chordLen, WaveSine, s.rate, s.rng)
	tri := newTone(116.5, 116.5, chordLen, WaveSine, s.rate, s.rng)
	chord := beep.Mix(gain(low, 0.5), gain(tri, 0.4))
	return gain(beep.Seq(
		newDecay(rustle, 150*time.Millisecond, 10*time.Millisecond, 40*time.Millisecond, s.rate),
		newDecay(chord, chordLen, 30*time.Millisecond, 200*time.Millisecond, s.rate),
	), 0.6)
}

// A burst of static when the stalker relocates.
func (s *Synth) teleport() beep.Streamer {
	static := newTone(0, 0, TeleportLength, WaveNoise, s.rate, s.rng)
	return gain(newDecay(static, TeleportLength, 20*time.Millisecond, 80*time.Millisecond, s.rate), 0.3)
}

// Dissonant saw and square cluster held for the whole jumpscare.
func (s *Synth) jumpscare() beep.Streamer {
	l := JumpscareLength
	return gain(beep.Mix(
		gain(newTone(220, 180, l, WaveSaw, s.rate, s.rng), 0.3),
		gain(newTone(233, 170, l, WaveSaw, s.rate, s.rng), 0.3),
		gain(newTone(311, 300, l, WaveSquare, s.rate, s.rng), 0.15),
		gain(newTone(0, 0, l, WaveNoise, s.rate, s.rng), 0.25),
	), 0.8)
}

// Low brown-noise wind; loop it for a continuous bed.
func (s *Synth) ambience() beep.Streamer {
	return gain(newTone(0, 0, AmbienceLength, WaveBrown, s.rate, s.rng), 0.4)
}
