package main

import (
	"math"

	"github.com/ugaemi/eightpages-server/internal/game"
)

// project maps a world point into view space: right of the player and
// ahead of the player, in world units.
func project(pose game.Pose, p game.Vec3) (right, ahead float64) {
	fwd := pose.GroundForward()
	side := fwd.Cross(game.Up)
	rel := p.Sub(pose.Position).Flat()
	return rel.Dot(side), rel.Dot(fwd)
}

var arrows = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// arrowFor picks the arrow for a compass bearing; positive bearings are to
// the left.
func arrowFor(angle float64) rune {
	a := game.WrapAngle(angle)
	if a < 0 {
		a += 2 * math.Pi
	}
	i := int(math.Round(a/(math.Pi/4))) % len(arrows)
	return arrows[i]
}

// noiseDensity turns a distortion intensity into the share of cells drawn
// as static.
func noiseDensity(intensity float64) float64 {
	if intensity <= 0 {
		return 0
	}
	return math.Min(intensity/game.MaxIntensity, 1) * 0.6
}
