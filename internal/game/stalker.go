package game

import (
	"math"
	"math/rand"
)

// StalkerStart is the stalker's position when a session begins.
var StalkerStart = Vec3{X: 70, Y: 0, Z: 70}

// TeleportEvent describes a stalker reposition.
type TeleportEvent struct {
	From     Vec3    `json:"from"`
	To       Vec3    `json:"to"`
	Distance float64 `json:"distance"` // from the player at teleport time
}

// Stalker owns the antagonist position. Only Step and Reset write it.
type Stalker struct {
	tuning       Tuning
	rng          *rand.Rand
	position     Vec3
	clock        float64
	lastTeleport float64
}

// NewStalker creates a stalker that draws teleport positions from rng.
func NewStalker(t Tuning, rng *rand.Rand) *Stalker {
	s := &Stalker{tuning: t, rng: rng}
	s.Reset()
	return s
}

// Reset puts the stalker back at its default spawn with a fresh cooldown.
func (s *Stalker) Reset() {
	s.position = StalkerStart
	s.clock = 0
	s.lastTeleport = 0
}

// Position returns the authoritative stalker position.
func (s *Stalker) Position() Vec3 {
	return s.position
}

// Cooldown returns how long the stalker waits between teleports at the
// given progress. It shortens with every page and never drops below the floor.
func (t Tuning) Cooldown(progress int) float64 {
	return math.Max(t.MinTeleportCooldown, t.BaseTeleportCooldown-float64(progress)*t.CooldownDecay)
}

// SpawnRange returns the [min, max] teleport distance from the player at the
// given progress. Both bounds shrink as pages are collected; min never goes
// below the safety radius.
func (t Tuning) SpawnRange(progress int) (float64, float64) {
	minDist := math.Max(t.SafetyRadius, t.BaseSpawnDistance-float64(progress)*t.SpawnDistanceDecay)
	spread := math.Max(t.MinSpawnSpread, t.BaseSpawnSpread-float64(progress)*t.SpawnSpreadDecay)
	return minDist, minDist + spread
}

// Step advances the stalker clock and teleports it into a ring around the
// player once the cooldown has elapsed. The stalker never paths toward the
// player; teleporting is its only move.
func (s *Stalker) Step(player Vec3, progress int, dt float64) (TeleportEvent, bool) {
	s.clock += dt
	if s.clock-s.lastTeleport <= s.tuning.Cooldown(progress) {
		return TeleportEvent{}, false
	}

	minDist, maxDist := s.tuning.SpawnRange(progress)
	angle := s.rng.Float64() * 2 * math.Pi
	dist := minDist + s.rng.Float64()*(maxDist-minDist)

	from := s.position
	s.position = Vec3{
		X: player.X + math.Cos(angle)*dist,
		Y: 0,
		Z: player.Z + math.Sin(angle)*dist,
	}
	s.lastTeleport = s.clock

	return TeleportEvent{From: from, To: s.position, Distance: dist}, true
}

// Jitter returns the idle wobble offset to draw the stalker with at time t.
// It is a rendering offset only and never feeds threat or catch checks.
func Jitter(t float64) Vec3 {
	return Vec3{
		X: math.Sin(t*20) * 0.01,
		Y: math.Sin(t*15) * 0.02,
	}
}
