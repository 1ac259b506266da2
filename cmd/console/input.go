package main

import (
	"time"

	"github.com/ugaemi/eightpages-server/internal/game"
)

// Terminals report key presses and auto-repeats but never releases, so a key
// counts as held for a short window after its last report.
const holdWindow = 300 * time.Millisecond

type action int

const (
	actForward action = iota
	actBack
	actLeft
	actRight
	actLookLeft
	actLookRight
	actLookUp
	actLookDown
	actionCount
)

type keyHold struct {
	last [actionCount]time.Time
}

func (k *keyHold) press(a action, now time.Time) {
	k.last[a] = now
}

func (k *keyHold) held(a action, now time.Time) bool {
	t := k.last[a]
	return !t.IsZero() && now.Sub(t) < holdWindow
}

func (k *keyHold) clear() {
	k.last = [actionCount]time.Time{}
}

func (k *keyHold) axis(neg, pos action, now time.Time) float64 {
	v := 0.0
	if k.held(pos, now) {
		v++
	}
	if k.held(neg, now) {
		v--
	}
	return v
}

// input turns the held keys into one tick of stick-style input.
func (k *keyHold) input(now time.Time, dt float64) game.Input {
	return game.Input{
		Forward:    k.axis(actBack, actForward, now),
		Strafe:     k.axis(actLeft, actRight, now),
		LookX:      k.axis(actLookLeft, actLookRight, now) * dt,
		LookY:      k.axis(actLookDown, actLookUp, now) * -dt,
		LookSource: game.LookStick,
	}
}
