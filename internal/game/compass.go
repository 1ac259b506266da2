package game

import "math"

// Bearing points the player toward the nearest page still in the forest.
type Bearing struct {
	PageID   int     `json:"page_id"`
	Target   Vec3    `json:"target"`
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"` // radians in (-Pi, Pi], 0 is straight ahead
}

// Nearest finds the closest active page and the signed angle to turn toward
// it. Ties go to the first page in the slice. ok is false when no page is
// active.
func Nearest(pose Pose, pages []Page) (b Bearing, ok bool) {
	best := math.Inf(1)
	for _, p := range pages {
		if !p.Active {
			continue
		}
		d := Distance(pose.Position, p.Position)
		if d < best {
			best = d
			b = Bearing{PageID: p.ID, Target: p.Position, Distance: d}
			ok = true
		}
	}
	if !ok {
		return Bearing{}, false
	}

	to := b.Target.Sub(pose.Position).Flat()
	fwd := pose.GroundForward()
	b.Angle = WrapAngle(math.Atan2(to.X, to.Z) - math.Atan2(fwd.X, fwd.Z))
	return b, true
}
