// Command console plays the game locally in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/eightpages-server/internal/audio"
	"github.com/ugaemi/eightpages-server/internal/config"
	"github.com/ugaemi/eightpages-server/internal/game"
	"github.com/ugaemi/eightpages-server/internal/narrative"
)

const (
	frameRate    = 60
	messageTTL   = 4 * time.Second
	radarRange   = 45.0 // world units from centre to edge
	pageSightFar = 18.0 // pages further than this are not drawn
	pageSightDim = 8.0  // how far pages are seen without the flashlight
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the stalker")
	mute := flag.Bool("mute", false, "disable sound")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if err := run(*seed, *mute, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}

type console struct {
	screen  tcell.Screen
	session *game.Session
	keys    keyHold
	out     *audio.Output
	narr    *narrative.Dispatcher
	texts   chan narrationLine
	rng     *rand.Rand
	// run changes on every start and return to the menu.
	run uint64

	message      string
	messageUntil time.Time
}

// narrationLine is resolved text tagged with the run that asked for it.
type narrationLine struct {
	run  uint64
	text string
}

func run(seed int64, mute bool, logPath string) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	rng := rand.New(rand.NewSource(seed))
	c := &console{
		screen:  screen,
		session: game.NewSession(tuning, rand.New(rand.NewSource(seed))),
		out:     audio.NewOutput(audio.NewSynth(audio.SampleRate, rand.New(rand.NewSource(seed+1)))),
		narr:    narrative.NewDispatcher(narrative.NewOpenAINarrator(cfg.OpenAIAPIKey, cfg.OpenAIModel), cfg.NarrationTimeout),
		texts:   make(chan narrationLine, 8),
		rng:     rng,
	}
	if !mute {
		if err := c.out.Init(); err != nil {
			slog.Warn("audio disabled", "error", err)
		}
	}
	defer c.out.Close()

	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	dt := 1.0 / frameRate
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !c.handleEvent(ev) {
				return nil
			}
		case line := <-c.texts:
			c.receive(line)
		case now := <-ticker.C:
			c.step(now, dt)
			c.draw(now)
		}
	}
}

// handleEvent applies a terminal event; it returns false to quit.
func (c *console) handleEvent(ev tcell.Event) bool {
	now := time.Now()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return false
		case tcell.KeyEnter:
			c.start()
		case tcell.KeyLeft:
			c.keys.press(actLookLeft, now)
		case tcell.KeyRight:
			c.keys.press(actLookRight, now)
		case tcell.KeyUp:
			c.keys.press(actLookUp, now)
		case tcell.KeyDown:
			c.keys.press(actLookDown, now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'w', 'W':
				c.keys.press(actForward, now)
			case 's', 'S':
				c.keys.press(actBack, now)
			case 'a', 'A':
				c.keys.press(actLeft, now)
			case 'd', 'D':
				c.keys.press(actRight, now)
			case 'f', 'F':
				c.session.ToggleFlashlight()
			case 'g', 'G':
				c.returnToMenu()
			}
		}
	}
	return true
}

func (c *console) start() {
	if !c.session.Start() {
		return
	}
	c.run++
	c.keys.clear()
	c.say(narrative.Objective)
	c.out.SetAmbience(true)
}

func (c *console) returnToMenu() {
	c.session.ReturnToMenu()
	c.run++
	c.keys.clear()
	c.message = ""
	c.out.SetAmbience(false)
}

func (c *console) step(now time.Time, dt float64) {
	res := c.session.Step(c.keys.input(now, dt), dt)
	c.out.PlayEvents(res.Events)
	for _, ev := range res.Events {
		if ev.Kind == game.EventVictory || ev.Kind == game.EventCaught {
			c.out.SetAmbience(false)
		}
	}
	run := c.run
	for _, n := range res.Narrations {
		c.narr.Request(n, func(text string) {
			select {
			case c.texts <- narrationLine{run: run, text: text}:
			default:
			}
		})
	}
}

// receive shows narration unless it belongs to an earlier run.
func (c *console) receive(line narrationLine) {
	if line.run != c.run {
		slog.Debug("dropping stale narration", "text", line.text)
		return
	}
	c.say(line.text)
}

func (c *console) say(text string) {
	c.message = text
	c.messageUntil = time.Now().Add(messageTTL)
}

var (
	styleBase    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	styleTree    = styleBase.Foreground(tcell.ColorDarkGreen)
	stylePlayer  = styleBase.Foreground(tcell.ColorWhite).Bold(true)
	stylePage    = styleBase.Foreground(tcell.ColorWhite)
	styleStalker = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleText    = styleBase.Foreground(tcell.ColorWhite)
	styleAlarm   = tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorWhite).Bold(true)
)

func (c *console) draw(now time.Time) {
	s := c.screen
	s.Clear()
	w, h := s.Size()
	snap := c.session.Snapshot()

	switch snap.State {
	case game.StateMenu:
		c.centre(h/2-1, "E I G H T   P A G E S", styleText)
		c.centre(h/2+1, "ENTER to start   WASD move   arrows look   F flashlight   G menu   Q quit", styleBase)
	case game.StateCaught:
		c.fill(styleAlarm)
		c.centre(h/2, "● ●", styleAlarm)
	case game.StateGameOver, game.StateVictory:
		title := "YOU WERE TAKEN"
		if snap.State == game.StateVictory {
			title = "YOU ESCAPED"
		}
		c.centre(h/2-2, title, styleText)
		c.centre(h/2, fmt.Sprintf("PAGES %d/%d   SURVIVED %.0fs", snap.Progress, snap.TotalPages, snap.Elapsed), styleBase)
		c.centre(h/2+2, "ENTER to play again   G for menu", styleBase)
	default:
		c.drawRadar(snap, w, h)
		c.drawStatic(snap.Intensity, w, h)
		c.drawHUD(snap, w)
	}

	if c.message != "" && now.Before(c.messageUntil) {
		c.centre(h-2, c.message, styleText)
	}
	s.Show()
}

func (c *console) drawRadar(snap game.Snapshot, w, h int) {
	cx, cy := w/2, h/2
	scaleY := float64(h/2-2) / radarRange
	scaleX := scaleY * 2 // terminal cells are about twice as tall as wide

	plot := func(p game.Vec3, r rune, st tcell.Style) {
		right, ahead := project(snap.Player, p)
		x := cx + int(right*scaleX)
		y := cy - int(ahead*scaleY)
		if x >= 0 && x < w && y >= 1 && y < h-3 {
			c.screen.SetContent(x, y, r, nil, st)
		}
	}

	// Sparse trees on a fixed world grid so walking has visible motion.
	pos := snap.Player.Position
	for gx := int(pos.X/6) - 8; gx <= int(pos.X/6)+8; gx++ {
		for gz := int(pos.Z/6) - 8; gz <= int(pos.Z/6)+8; gz++ {
			if (gx*73856093^gz*19349663)&7 == 0 {
				plot(game.Vec3{X: float64(gx) * 6, Z: float64(gz) * 6}, '♣', styleTree)
			}
		}
	}

	sight := pageSightDim
	if snap.Flashlight {
		sight = pageSightFar
	}
	for _, p := range snap.Pages {
		if game.Distance(pos.Flat(), p.Position.Flat()) < sight {
			plot(p.Position, '▯', stylePage)
		}
	}
	if snap.Visible || game.Distance(pos.Flat(), snap.Stalker.Flat()) < sight {
		plot(snap.Stalker.Add(snap.Jitter), '▲', styleStalker)
	}
	c.screen.SetContent(cx, cy, '@', nil, stylePlayer)
}

func (c *console) drawStatic(intensity float64, w, h int) {
	d := noiseDensity(intensity)
	if d == 0 {
		return
	}
	glyphs := []rune{'░', '▒', '▓', '#', '%'}
	for y := 1; y < h-3; y++ {
		for x := 0; x < w; x++ {
			if c.rng.Float64() < d {
				c.screen.SetContent(x, y, glyphs[c.rng.Intn(len(glyphs))], nil, styleBase)
			}
		}
	}
}

func (c *console) drawHUD(snap game.Snapshot, w int) {
	light := "OFF"
	if snap.Flashlight {
		light = "ON"
	}
	hud := fmt.Sprintf("PAGES %d/%d   LIGHT %s   %3.0fs", snap.Progress, snap.TotalPages, light, snap.Elapsed)
	c.text(1, 0, hud, styleText)
	if snap.Bearing != nil {
		c.text(w-14, 0, fmt.Sprintf("PAGE %c %4.0fm", arrowFor(snap.Bearing.Angle), snap.Bearing.Distance), styleText)
	}
}

func (c *console) fill(st tcell.Style) {
	w, h := c.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (c *console) centre(y int, s string, st tcell.Style) {
	w, _ := c.screen.Size()
	c.text((w-len([]rune(s)))/2, y, s, st)
}

func (c *console) text(x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		c.screen.SetContent(x+i, y, r, nil, st)
	}
}
