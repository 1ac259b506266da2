package game

// ThreatSample is the per-tick threat reading. It is recomputed every tick
// and never carried over.
type ThreatSample struct {
	Distance   float64 `json:"distance"`
	Visibility float64 `json:"visibility"` // dot(forward, toStalker)
	Visible    bool    `json:"visible"`
	Intensity  float64 `json:"intensity"`
	InReach    bool    `json:"in_reach"` // inside the catch radius this tick
}

// Assess scores how threatening the stalker is to the player.
func (t Tuning) Assess(player Pose, stalker Vec3, progress int) ThreatSample {
	d := Distance(player.Position, stalker)
	toStalker := stalker.Sub(player.Position).Normalize()
	vis := player.Forward().Dot(toStalker)

	s := ThreatSample{
		Distance:   d,
		Visibility: vis,
		Visible:    vis > t.VisibilityDot,
		InReach:    d < t.CatchRadius,
	}
	if d >= t.AwarenessRadius {
		return s
	}

	base := (t.AwarenessRadius - d) / t.AwarenessRadius
	multiplier := t.BaseMultiplier + float64(progress)*t.MultiplierPerPage
	intensity := base * multiplier
	// Looking at it makes things worse, not better.
	if s.Visible {
		intensity *= t.VisibilityFactor
	}
	if intensity > t.MaxIntensity {
		intensity = t.MaxIntensity
	}
	s.Intensity = intensity
	return s
}

// CatchDetector turns the in-reach level into a one-shot caught event.
type CatchDetector struct {
	inside bool
}

// Update returns true only on the tick the player enters the catch radius.
func (c *CatchDetector) Update(inReach bool) bool {
	fired := inReach && !c.inside
	c.inside = inReach
	return fired
}

// Reset forgets any previous contact.
func (c *CatchDetector) Reset() {
	c.inside = false
}
