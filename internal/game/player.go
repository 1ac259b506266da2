package game

import (
	"encoding/json"
	"math"
)

// LookSource tells the player controller how to scale a look delta.
type LookSource int

const (
	// LookPointer deltas are raw pointer counts (mouse or touch drag).
	LookPointer LookSource = iota
	// LookStick deltas are already normalized by a virtual stick.
	LookStick
)

func (s LookSource) String() string {
	switch s {
	case LookStick:
		return "stick"
	default:
		return "pointer"
	}
}

// MarshalJSON serializes LookSource as a string.
func (s LookSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes LookSource from a string.
func (s *LookSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "stick":
		*s = LookStick
	default:
		*s = LookPointer
	}
	return nil
}

// Input is one tick of player intent. It is passed by value into the
// session; nothing reads device state directly.
type Input struct {
	Forward    float64    `json:"forward"` // +1 forward, -1 back
	Strafe     float64    `json:"strafe"`  // +1 right, -1 left
	LookX      float64    `json:"look_x"`
	LookY      float64    `json:"look_y"`
	LookSource LookSource `json:"look_source"`
}

// Clamped returns a copy with both movement axes forced into [-1, 1].
func (in Input) Clamped() Input {
	in.Forward = clamp(in.Forward, -1, 1)
	in.Strafe = clamp(in.Strafe, -1, 1)
	if math.IsNaN(in.LookX) || math.IsInf(in.LookX, 0) {
		in.LookX = 0
	}
	if math.IsNaN(in.LookY) || math.IsInf(in.LookY, 0) {
		in.LookY = 0
	}
	return in
}

// Pose is a position plus a yaw/pitch orientation.
// Yaw 0 faces -Z; positive yaw turns left.
type Pose struct {
	Position Vec3    `json:"position"`
	Yaw      float64 `json:"yaw"`
	Pitch    float64 `json:"pitch"`
}

// Forward returns the unit view direction including pitch.
func (p Pose) Forward() Vec3 {
	cp := math.Cos(p.Pitch)
	return Vec3{
		X: -math.Sin(p.Yaw) * cp,
		Y: math.Sin(p.Pitch),
		Z: -math.Cos(p.Yaw) * cp,
	}
}

// GroundForward returns the view direction projected onto the ground plane.
func (p Pose) GroundForward() Vec3 {
	return Vec3{X: -math.Sin(p.Yaw), Z: -math.Cos(p.Yaw)}
}

// PlayerStart is where every session begins.
var PlayerStart = Vec3{X: 0, Y: EyeHeight, Z: 5}

// Player integrates input into the player pose and tracks footstep cadence.
type Player struct {
	tuning        Tuning
	pose          Pose
	footstepTimer float64
}

// NewPlayer creates a player at the start position looking down -Z.
func NewPlayer(t Tuning) *Player {
	p := &Player{tuning: t}
	p.Reset()
	return p
}

// Reset returns the player to the start pose.
func (p *Player) Reset() {
	start := PlayerStart
	start.Y = p.tuning.EyeHeight
	p.pose = Pose{Position: start}
	p.footstepTimer = 0
}

// Pose returns the current pose.
func (p *Player) Pose() Pose {
	return p.pose
}

// Step applies one tick of input and reports whether a footstep is due.
func (p *Player) Step(in Input, dt float64) (footstep bool) {
	in = in.Clamped()
	p.look(in)

	moving := math.Abs(in.Forward) > p.tuning.InputDeadzone || math.Abs(in.Strafe) > p.tuning.InputDeadzone
	if moving {
		fwd := p.pose.GroundForward().Normalize()
		side := fwd.Cross(Up).Normalize()
		move := fwd.Scale(in.Forward).Add(side.Scale(in.Strafe)).Scale(p.tuning.WalkSpeed * dt)
		p.pose.Position = p.pose.Position.Add(move)

		p.footstepTimer += dt
		if p.footstepTimer > p.tuning.FootstepInterval {
			p.footstepTimer = 0
			footstep = true
		}
	}

	// No vertical locomotion: height is pinned every tick.
	p.pose.Position.Y = p.tuning.EyeHeight
	return footstep
}

func (p *Player) look(in Input) {
	if in.LookX == 0 && in.LookY == 0 {
		return
	}
	scale := p.tuning.PointerLookScale
	if in.LookSource == LookStick {
		scale = p.tuning.StickLookScale
	}
	p.pose.Yaw = WrapAngle(p.pose.Yaw - in.LookX*scale)
	p.pose.Pitch = clamp(p.pose.Pitch-in.LookY*scale, -p.tuning.MaxPitch, p.tuning.MaxPitch)
}
