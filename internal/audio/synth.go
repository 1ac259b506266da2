package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
	WaveBrown
)

// tone is a fixed-length oscillator. Frequency may glide linearly from
// freq to endFreq over the tone's length.
type tone struct {
	freq, endFreq float64
	phase         float64
	total, pos    int
	wave          Wave
	rate          beep.SampleRate
	rng           *rand.Rand
	brown         float64
}

func newTone(freq, endFreq float64, d time.Duration, wave Wave, rate beep.SampleRate, rng *rand.Rand) *tone {
	return &tone{
		freq:    freq,
		endFreq: endFreq,
		total:   rate.N(d),
		wave:    wave,
		rate:    rate,
		rng:     rng,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		case WaveBrown:
			t.brown = (t.brown + 0.02*(t.rng.Float64()*2-1)) / 1.02
			v = math.Max(-1, math.Min(1, t.brown*3.5))
		}
		samples[i][0], samples[i][1] = v, v

		f := t.freq
		if t.total > 1 {
			f += (t.endFreq - t.freq) * float64(t.pos) / float64(t.total-1)
		}
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// decay shapes a stream with a linear attack followed by an exponential fall.
type decay struct {
	s       beep.Streamer
	attack  int
	tau     float64 // samples
	pos     int
	release int // final samples faded linearly to zero
	total   int
}

func newDecay(s beep.Streamer, length, attack, halfLife time.Duration, rate beep.SampleRate) *decay {
	return &decay{
		s:       s,
		attack:  rate.N(attack),
		tau:     float64(rate.N(halfLife)) / math.Ln2,
		release: rate.N(10 * time.Millisecond),
		total:   rate.N(length),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if d.pos < d.attack {
			g = float64(d.pos) / float64(d.attack)
		} else if d.tau > 0 {
			g = math.Exp(-float64(d.pos-d.attack) / d.tau)
		}
		if left := d.total - d.pos; left < d.release {
			g *= math.Max(0, float64(left)/float64(d.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.s.Err() }

// gain wraps s in a volume effect; zero or less is silence.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
