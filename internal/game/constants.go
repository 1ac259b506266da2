package game

import (
	"math"
	"time"
)

// Pages
const (
	TotalPages      = 8
	PageHeight      = 1.2
	CollectRadius   = 2.5 // units, eye to page
	ForestHalfWidth = 175.0
)

// Player
const (
	EyeHeight        = 1.78
	WalkSpeed        = 9.0 // units per second
	InputDeadzone    = 0.1
	FootstepInterval = 0.5 // seconds of moving time
	PointerLookScale = 0.002
	StickLookScale   = 3.5
	MaxPitch         = math.Pi * 0.4 // 72 degrees
)

// Stalker
const (
	BaseTeleportCooldown = 6.0 // seconds
	MinTeleportCooldown  = 0.6
	CooldownDecay        = 1.0 // seconds per page
	BaseSpawnDistance    = 28.0
	SpawnDistanceDecay   = 3.0
	BaseSpawnSpread      = 6.0
	SpawnSpreadDecay     = 0.6
	MinSpawnSpread       = 1.0
	SafetyRadius         = 6.0 // never teleport closer than this
)

// Threat
const (
	AwarenessRadius   = 40.0
	CatchRadius       = 4.2
	BaseMultiplier    = 1.5
	MultiplierPerPage = 0.6
	VisibilityDot     = 0.6
	VisibilityFactor  = 6.0
	MaxIntensity      = 1.5
)

// Session timing
const (
	JumpscareDuration = 1500 * time.Millisecond
	TickRate          = 30 // ticks per second
	TickInterval      = time.Second / TickRate
)

// Tuning groups every gameplay constant so a server can override them from a
// file without touching the simulation code.
type Tuning struct {
	CollectRadius float64 `yaml:"collect_radius"`

	EyeHeight        float64 `yaml:"eye_height"`
	WalkSpeed        float64 `yaml:"walk_speed"`
	InputDeadzone    float64 `yaml:"input_deadzone"`
	FootstepInterval float64 `yaml:"footstep_interval"`
	PointerLookScale float64 `yaml:"pointer_look_scale"`
	StickLookScale   float64 `yaml:"stick_look_scale"`
	MaxPitch         float64 `yaml:"max_pitch"`

	BaseTeleportCooldown float64 `yaml:"base_teleport_cooldown"`
	MinTeleportCooldown  float64 `yaml:"min_teleport_cooldown"`
	CooldownDecay        float64 `yaml:"cooldown_decay"`
	BaseSpawnDistance    float64 `yaml:"base_spawn_distance"`
	SpawnDistanceDecay   float64 `yaml:"spawn_distance_decay"`
	BaseSpawnSpread      float64 `yaml:"base_spawn_spread"`
	SpawnSpreadDecay     float64 `yaml:"spawn_spread_decay"`
	MinSpawnSpread       float64 `yaml:"min_spawn_spread"`
	SafetyRadius         float64 `yaml:"safety_radius"`

	AwarenessRadius   float64 `yaml:"awareness_radius"`
	CatchRadius       float64 `yaml:"catch_radius"`
	BaseMultiplier    float64 `yaml:"base_multiplier"`
	MultiplierPerPage float64 `yaml:"multiplier_per_page"`
	VisibilityDot     float64 `yaml:"visibility_dot"`
	VisibilityFactor  float64 `yaml:"visibility_factor"`
	MaxIntensity      float64 `yaml:"max_intensity"`

	JumpscareDuration time.Duration `yaml:"jumpscare_duration"`
}

// DefaultTuning returns the stock gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		CollectRadius: CollectRadius,

		EyeHeight:        EyeHeight,
		WalkSpeed:        WalkSpeed,
		InputDeadzone:    InputDeadzone,
		FootstepInterval: FootstepInterval,
		PointerLookScale: PointerLookScale,
		StickLookScale:   StickLookScale,
		MaxPitch:         MaxPitch,

		BaseTeleportCooldown: BaseTeleportCooldown,
		MinTeleportCooldown:  MinTeleportCooldown,
		CooldownDecay:        CooldownDecay,
		BaseSpawnDistance:    BaseSpawnDistance,
		SpawnDistanceDecay:   SpawnDistanceDecay,
		BaseSpawnSpread:      BaseSpawnSpread,
		SpawnSpreadDecay:     SpawnSpreadDecay,
		MinSpawnSpread:       MinSpawnSpread,
		SafetyRadius:         SafetyRadius,

		AwarenessRadius:   AwarenessRadius,
		CatchRadius:       CatchRadius,
		BaseMultiplier:    BaseMultiplier,
		MultiplierPerPage: MultiplierPerPage,
		VisibilityDot:     VisibilityDot,
		VisibilityFactor:  VisibilityFactor,
		MaxIntensity:      MaxIntensity,

		JumpscareDuration: JumpscareDuration,
	}
}

// Sanitize repairs a tuning loaded from an untrusted source so the
// simulation invariants still hold: the stalker can never spawn inside the
// catch radius and the cooldown floor stays positive.
func (t Tuning) Sanitize() Tuning {
	d := DefaultTuning()
	if t.CollectRadius <= 0 {
		t.CollectRadius = d.CollectRadius
	}
	if t.WalkSpeed <= 0 {
		t.WalkSpeed = d.WalkSpeed
	}
	if t.FootstepInterval <= 0 {
		t.FootstepInterval = d.FootstepInterval
	}
	if t.MaxPitch <= 0 || t.MaxPitch >= math.Pi/2 {
		t.MaxPitch = d.MaxPitch
	}
	if t.MinTeleportCooldown <= 0 {
		t.MinTeleportCooldown = d.MinTeleportCooldown
	}
	if t.BaseTeleportCooldown < t.MinTeleportCooldown {
		t.BaseTeleportCooldown = t.MinTeleportCooldown
	}
	if t.AwarenessRadius <= 0 {
		t.AwarenessRadius = d.AwarenessRadius
	}
	if t.CatchRadius <= 0 {
		t.CatchRadius = d.CatchRadius
	}
	if t.SafetyRadius <= t.CatchRadius {
		t.SafetyRadius = t.CatchRadius + 1
	}
	if t.MinSpawnSpread < 0 {
		t.MinSpawnSpread = 0
	}
	// Difficulty only ever rises with progress.
	t.CooldownDecay = math.Max(t.CooldownDecay, 0)
	t.SpawnDistanceDecay = math.Max(t.SpawnDistanceDecay, 0)
	t.SpawnSpreadDecay = math.Max(t.SpawnSpreadDecay, 0)
	if t.MaxIntensity <= 0 {
		t.MaxIntensity = d.MaxIntensity
	}
	if t.VisibilityFactor < 1 {
		t.VisibilityFactor = 1
	}
	if t.JumpscareDuration <= 0 {
		t.JumpscareDuration = d.JumpscareDuration
	}
	return t
}
