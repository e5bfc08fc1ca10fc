package loop

import (
	"bufio"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/session"
)

// RunOptions configures a terminal session.
type RunOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Store        highscore.Store
	Logger       *log.Logger
	Clock        clock.Clock // Match clock; the system clock when nil

	Seed uint64 // 0 seeds from the current time
	FPS  int    // config.TargetFPS when <= 0

	// Events delivers server notices. Nil for local play.
	Events <-chan session.Event
	// IdleTimeout disconnects a session left on the title or game-over
	// screen. Zero disables it.
	IdleTimeout time.Duration

	// OnResult is called once for every finished match.
	OnResult func(Result)
	// TopScores lists the best players currently connected, if any.
	TopScores func(n int) []session.TopScoreEntry
}

type screenKind int

const (
	screenTitle screenKind = iota
	screenPlaying
	screenOver
	screenShutdown
)

// Terminal drives a match from terminal input and draws it frame by frame.
type Terminal struct {
	opts   RunOptions
	logger *log.Logger

	match   *Match
	epoch   uint64
	sprites *draw.SpriteTable
	hud     *hudLine

	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	theme  *draw.Theme
	w      io.Writer

	stream    *input.Stream
	frameTime time.Duration

	screen       screenKind
	running      bool
	needsClear   bool
	termW, termH int

	lastActivity time.Time
	overAt       time.Time
	shutdownAt   time.Time
}

// Run plays on the terminal behind r and w until the player quits, the input
// closes, the session idles out, or a server shutdown notice expires.
func Run(r *bufio.Reader, w io.Writer, opts RunOptions) error {
	t := NewTerminal(w, opts)
	t.stream = input.StartStream(r)
	return t.Run()
}

// NewTerminal prepares a terminal session writing to w. Input is attached by Run.
func NewTerminal(w io.Writer, opts RunOptions) *Terminal {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.FPS <= 0 {
		opts.FPS = config.TargetFPS
	}

	var rng object.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}

	t := &Terminal{
		opts:      opts,
		logger:    opts.Logger,
		sprites:   draw.NewSpriteTable(),
		hud:       &hudLine{},
		canvas:    draw.NewScaledCanvas(1, 1, config.StageWidth, config.StageHeight),
		cw:        draw.NewChunkWriter(w, 0, 0),
		theme:     draw.NewTheme(w),
		w:         w,
		frameTime: time.Second / time.Duration(opts.FPS),
		screen:    screenTitle,
		running:   true,
	}
	t.match = NewMatch(Options{
		Clock:    opts.Clock,
		Rand:     rng,
		Renderer: t.sprites,
		HUD:      t.hud,
		Store:    opts.Store,
		Logger:   opts.Logger,
	})
	t.match.loadHighScore()
	t.updateScreen()
	return t
}

// Run is the frame loop: input, events, update, draw, sleep.
func (t *Terminal) Run() error {
	draw.HideCursor(t.w)
	defer draw.ShowCursor(t.w)
	draw.ClearScreen(t.w)

	t.lastActivity = time.Now()
	for t.running {
		frameStart := time.Now()

		in := input.ReadInput(t.stream)
		if t.stream.Closed() {
			t.running = false
		}
		t.processEvents()
		t.updateScreen()
		t.step(in, frameStart)

		if err := t.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < t.frameTime {
			time.Sleep(t.frameTime - elapsed)
		}
	}

	draw.ClearScreen(t.w)
	return nil
}

// step applies one frame of input to the current screen.
func (t *Terminal) step(in input.Input, now time.Time) {
	if in.Quit {
		t.running = false
		return
	}
	if len(in.Pressed) > 0 {
		t.lastActivity = now
	}

	switch t.screen {
	case screenTitle:
		if in.Space || in.Enter {
			t.startMatch(now)
		}
	case screenPlaying:
		if !t.match.Tick(t.epoch, in) {
			t.finishMatch(now)
		}
	case screenOver:
		if now.Sub(t.overAt) >= config.ReplayDelay && (in.Space || in.Enter) {
			t.startMatch(now)
		}
	case screenShutdown:
		if now.Sub(t.shutdownAt) >= config.ShutdownDisplayTime {
			t.running = false
		}
	}
	t.match.FlushEffects()

	idle := t.screen == screenTitle || t.screen == screenOver
	if idle && t.opts.IdleTimeout > 0 && now.Sub(t.lastActivity) >= t.opts.IdleTimeout {
		t.logger.Info("disconnecting idle session", "idle", now.Sub(t.lastActivity).Round(time.Second))
		t.running = false
	}
}

func (t *Terminal) startMatch(now time.Time) {
	if t.stream != nil {
		input.ResetKeyInput(t.stream)
	}
	t.epoch = t.match.Reset()
	t.screen = screenPlaying
	t.needsClear = true
	t.lastActivity = now
}

func (t *Terminal) finishMatch(now time.Time) {
	t.screen = screenOver
	t.overAt = now
	t.lastActivity = now
	if res := t.match.Result(); res != nil && t.opts.OnResult != nil {
		t.opts.OnResult(*res)
	}
}

// processEvents drains pending server notices.
func (t *Terminal) processEvents() {
	for {
		select {
		case ev, ok := <-t.opts.Events:
			if !ok {
				t.running = false
				return
			}
			if ev.Type == session.EventServerShutdown && t.screen != screenShutdown {
				t.screen = screenShutdown
				t.shutdownAt = time.Now()
				t.needsClear = true
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. The render area is capped and
// centered; its first row holds the HUD.
func (t *Terminal) updateScreen() {
	tw, th, err := t.opts.TermSizeFunc()
	if err != nil || (tw == t.termW && th == t.termH) {
		return
	}
	t.termW, t.termH = tw, th

	rw, rh, offCol, offRow := draw.ClampTermSize(tw, th, config.MaxTermWidth, config.MaxTermHeight)
	t.canvas.Resize(rw, rh-config.HUDRows)
	t.canvas.SetOffset(offCol, offRow+config.HUDRows)
	t.cw.SetOffset(offCol, offRow+config.HUDRows)
	t.needsClear = true
}

// hudLine keeps the latest HUD state for the next frame.
type hudLine struct {
	state HUDState
}

func (h *hudLine) Update(s HUDState) {
	h.state = s
}
