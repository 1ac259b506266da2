package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStalker(seed int64) *Stalker {
	return NewStalker(DefaultTuning(), rand.New(rand.NewSource(seed)))
}

func TestTuning_Cooldown(t *testing.T) {
	tun := DefaultTuning()
	tests := []struct {
		progress int
		want     float64
	}{
		{0, 6},
		{1, 5},
		{5, 1},
		{6, MinTeleportCooldown},
		{8, MinTeleportCooldown},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tun.Cooldown(tt.progress), 1e-9, "progress %d", tt.progress)
	}
}

func TestTuning_SpawnRange_ShrinksWithProgress(t *testing.T) {
	tun := DefaultTuning()
	prevMin, prevMax := tun.SpawnRange(0)
	for p := 1; p <= TotalPages; p++ {
		lo, hi := tun.SpawnRange(p)
		assert.LessOrEqual(t, lo, prevMin, "min spawn distance at progress %d", p)
		assert.LessOrEqual(t, hi, prevMax, "max spawn distance at progress %d", p)
		assert.GreaterOrEqual(t, lo, SafetyRadius)
		assert.Greater(t, lo, CatchRadius)
		assert.GreaterOrEqual(t, hi, lo)
		prevMin, prevMax = lo, hi
	}
}

func TestTuning_Sanitize_NegativeDecaysNeverEaseDifficulty(t *testing.T) {
	tun := DefaultTuning()
	tun.CooldownDecay = -2
	tun.SpawnDistanceDecay = -3
	tun.SpawnSpreadDecay = -1
	tun = tun.Sanitize()

	assert.Zero(t, tun.CooldownDecay)
	assert.Zero(t, tun.SpawnDistanceDecay)
	assert.Zero(t, tun.SpawnSpreadDecay)

	prevCooldown := tun.Cooldown(0)
	prevMin, prevMax := tun.SpawnRange(0)
	for p := 1; p <= TotalPages; p++ {
		lo, hi := tun.SpawnRange(p)
		assert.LessOrEqual(t, tun.Cooldown(p), prevCooldown, "cooldown at progress %d", p)
		assert.LessOrEqual(t, lo, prevMin, "min spawn distance at progress %d", p)
		assert.LessOrEqual(t, hi, prevMax, "max spawn distance at progress %d", p)
		prevCooldown, prevMin, prevMax = tun.Cooldown(p), lo, hi
	}
}

func TestStalker_StartsAtDefaultSpawn(t *testing.T) {
	s := newTestStalker(1)
	assert.Equal(t, StalkerStart, s.Position())
}

func TestStalker_Step_TeleportDistanceWithinRing(t *testing.T) {
	tun := DefaultTuning()
	for progress := 0; progress <= TotalPages; progress++ {
		s := newTestStalker(int64(progress + 1))
		player := Vec3{X: 12, Y: EyeHeight, Z: -30}
		lo, hi := tun.SpawnRange(progress)

		teleports := 0
		for i := 0; i < 30*60; i++ {
			ev, ok := s.Step(player, progress, dt)
			if !ok {
				continue
			}
			teleports++
			ground := Distance(player.Flat(), ev.To.Flat())
			assert.InDelta(t, ev.Distance, ground, 1e-9)
			assert.GreaterOrEqual(t, ground, lo-1e-9)
			assert.LessOrEqual(t, ground, hi+1e-9)
			assert.GreaterOrEqual(t, ground, SafetyRadius)
			assert.Equal(t, 0.0, ev.To.Y)
			assert.Equal(t, ev.To, s.Position())
		}
		assert.Greater(t, teleports, 0, "progress %d should teleport within a minute", progress)
	}
}

func TestStalker_Step_CooldownBetweenTeleports(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		minGap   float64
	}{
		{"no pages", 0, 6},
		{"five pages", 5, 1},
		{"floor", 7, MinTeleportCooldown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStalker(42)
			var times []float64
			clock := 0.0
			for i := 0; i < 30*40; i++ {
				clock += dt
				if _, ok := s.Step(Vec3{}, tt.progress, dt); ok {
					times = append(times, clock)
				}
			}
			require.GreaterOrEqual(t, len(times), 2)
			for i := 1; i < len(times); i++ {
				gap := times[i] - times[i-1]
				assert.GreaterOrEqual(t, gap, tt.minGap-1e-9)
				assert.GreaterOrEqual(t, gap, MinTeleportCooldown-1e-9)
			}
		})
	}
}

func TestStalker_Step_SameSeedSamePositions(t *testing.T) {
	a := newTestStalker(7)
	b := newTestStalker(7)
	for i := 0; i < 30*20; i++ {
		evA, okA := a.Step(Vec3{X: float64(i)}, 2, dt)
		evB, okB := b.Step(Vec3{X: float64(i)}, 2, dt)
		require.Equal(t, okA, okB)
		require.Equal(t, evA, evB)
	}
}

func TestStalker_Reset(t *testing.T) {
	s := newTestStalker(3)
	for i := 0; i < 30*10; i++ {
		s.Step(Vec3{}, 0, dt)
	}
	require.NotEqual(t, StalkerStart, s.Position())

	s.Reset()
	assert.Equal(t, StalkerStart, s.Position())

	// Fresh cooldown: nothing happens for the first six seconds.
	for i := 0; i < 30*5; i++ {
		_, ok := s.Step(Vec3{}, 0, dt)
		assert.False(t, ok)
	}
}

func TestJitter_IsSmall(t *testing.T) {
	for i := 0; i < 100; i++ {
		j := Jitter(float64(i) * 0.37)
		assert.LessOrEqual(t, j.Len(), 0.05)
	}
}
