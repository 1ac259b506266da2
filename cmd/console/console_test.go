package main

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/eightpages-server/internal/audio"
	"github.com/ugaemi/eightpages-server/internal/game"
	"github.com/ugaemi/eightpages-server/internal/narrative"
)

func TestKeyHold_Input(t *testing.T) {
	var k keyHold
	now := time.Now()
	const dt = 1.0 / frameRate

	k.press(actForward, now)
	k.press(actLookRight, now)
	in := k.input(now.Add(100*time.Millisecond), dt)
	assert.Equal(t, 1.0, in.Forward)
	assert.Equal(t, 0.0, in.Strafe)
	assert.InDelta(t, dt, in.LookX, 1e-12)
	assert.Equal(t, game.LookStick, in.LookSource)

	// Opposite keys cancel.
	k.press(actBack, now)
	assert.Equal(t, 0.0, k.input(now, dt).Forward)

	// Released after the hold window.
	in = k.input(now.Add(holdWindow), dt)
	assert.Equal(t, game.Input{LookSource: game.LookStick}, in)

	k.press(actLookUp, now)
	assert.Less(t, k.input(now, dt).LookY, 0.0, "up raises the pitch")

	k.clear()
	assert.Equal(t, 0.0, k.input(now, dt).LookY)
}

func TestProject(t *testing.T) {
	tests := []struct {
		name      string
		pose      game.Pose
		p         game.Vec3
		wantRight float64
		wantAhead float64
	}{
		{"ahead", game.Pose{}, game.Vec3{Z: -10}, 0, 10},
		{"right", game.Pose{}, game.Vec3{X: 4}, 4, 0},
		{"height ignored", game.Pose{Position: game.Vec3{Y: 1.78}}, game.Vec3{Z: 3, Y: 0}, 0, -3},
		{"turned left", game.Pose{Yaw: math.Pi / 2}, game.Vec3{X: -5}, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			right, ahead := project(tt.pose, tt.p)
			assert.InDelta(t, tt.wantRight, right, 1e-9)
			assert.InDelta(t, tt.wantAhead, ahead, 1e-9)
		})
	}
}

func TestArrowFor(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '↑'},
		{math.Pi / 2, '←'},
		{-math.Pi / 2, '→'},
		{math.Pi, '↓'},
		{-math.Pi / 4, '↗'},
		{0.1, '↑'},
	}
	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(arrowFor(tt.angle)), "angle %f", tt.angle)
	}
}

func TestNoiseDensity(t *testing.T) {
	assert.Zero(t, noiseDensity(0))
	assert.InDelta(t, 0.3, noiseDensity(game.MaxIntensity/2), 1e-9)
	assert.InDelta(t, 0.6, noiseDensity(10), 1e-9)
}

// headlessConsole is a console without a screen or sound device.
func headlessConsole(tuning game.Tuning) *console {
	return &console{
		session: game.NewSession(tuning, rand.New(rand.NewSource(1))),
		out:     audio.NewOutput(audio.NewSynth(audio.SampleRate, rand.New(rand.NewSource(2)))),
		narr:    narrative.NewDispatcher(narrative.Static{}, time.Second),
		texts:   make(chan narrationLine, 8),
	}
}

// deadlyTuning puts the stalker's starting spot inside the catch radius.
func deadlyTuning() game.Tuning {
	tun := game.DefaultTuning()
	tun.CatchRadius = 100
	tun.JumpscareDuration = 100 * time.Millisecond
	return tun
}

// deathNote plays a run until the stalker catches the player and returns
// the resolved death note.
func deathNote(t *testing.T, c *console) narrationLine {
	t.Helper()
	c.start()
	now := time.Now()
	for i := 0; c.session.State() != game.StateGameOver; i++ {
		require.Less(t, i, 1000, "run should end")
		c.step(now, 1.0/frameRate)
	}
	c.narr.Wait()
	return <-c.texts
}

func TestConsole_NarrationFromEarlierRunIsDropped(t *testing.T) {
	c := headlessConsole(deadlyTuning())
	line := deathNote(t, c)

	c.returnToMenu()
	c.start()
	c.receive(line)

	assert.Equal(t, narrative.Objective, c.message)
}

func TestConsole_NarrationShownWithinRun(t *testing.T) {
	c := headlessConsole(deadlyTuning())
	line := deathNote(t, c)

	c.receive(line)

	assert.Equal(t, line.text, c.message)
	assert.NotEmpty(t, c.message)
}
