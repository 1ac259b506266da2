package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/ugaemi/eightpages-server/internal/game"
)

// Output plays cues on the default audio device.
type Output struct {
	synth    *Synth
	mixer    *beep.Mixer
	ambience *beep.Ctrl

	mu          sync.Mutex
	initialized bool
}

// NewOutput creates an output that is silent until Init succeeds.
func NewOutput(synth *Synth) *Output {
	return &Output{synth: synth, mixer: &beep.Mixer{}}
}

// Init opens the speaker. Machines without a sound device return an error
// and the output stays silent.
func (o *Output) Init() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.initialized {
		return nil
	}
	if err := speaker.Init(o.synth.rate, o.synth.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(o.mixer)
	o.initialized = true
	return nil
}

// Play queues a cue.
func (o *Output) Play(c Cue) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized {
		return
	}
	st := o.synth.Stream(c)
	if st == nil {
		return
	}
	speaker.Lock()
	o.mixer.Add(st)
	speaker.Unlock()
}

// PlayEvents queues the cue for each event that has one.
func (o *Output) PlayEvents(events []game.Event) {
	for _, ev := range events {
		if c, ok := CueForEvent(ev.Kind); ok {
			o.Play(c)
		}
	}
}

// SetAmbience starts or pauses the looping wind bed.
func (o *Output) SetAmbience(on bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if o.ambience == nil {
		if !on {
			return
		}
		o.ambience = &beep.Ctrl{Streamer: &ambienceLoop{s: o.synth}}
		o.mixer.Add(o.ambience)
		return
	}
	o.ambience.Paused = !on
}

// Close silences everything.
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized {
		return
	}
	speaker.Clear()
	o.initialized = false
}

// ambienceLoop plays the wind forever, building a new segment whenever the
// current one drains.
type ambienceLoop struct {
	s   *Synth
	cur beep.Streamer
}

func (a *ambienceLoop) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		if a.cur == nil {
			a.cur = a.s.Stream(CueAmbience)
		}
		n, ok := a.cur.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			a.cur = nil
		}
	}
	return filled, true
}

func (a *ambienceLoop) Err() error { return nil }
