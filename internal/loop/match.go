// Package loop runs Emoji Invaders: the match simulation (Match) and the
// terminal front end that drives it frame by frame (Terminal).
package loop

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/clock"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/fx"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// Renderer places sprites. The match only positions and tags them.
type Renderer interface {
	CreateSprite(glyph string, tags ...string) draw.SpriteHandle
	PositionSprite(h draw.SpriteHandle, x, y float64)
	TagSprite(h draw.SpriteHandle, tags ...string)
	RemoveSprite(h draw.SpriteHandle)
	Clear()
}

// HUDState is pushed to the HUD every tick.
type HUDState struct {
	Score       int
	Lives       int
	Elapsed     string // MM:SS
	TimeBonus   int
	BonusActive bool
	HighScore   int
}

// HUD displays match status.
type HUD interface {
	Update(HUDState)
}

// Options wires a match to its collaborators. Nil fields get defaults:
// the system clock, a time-seeded random source, and no-op presentation.
type Options struct {
	Clock    clock.Clock
	Rand     object.Rand
	Renderer Renderer
	HUD      HUD
	Store    highscore.Store
	Logger   *log.Logger
}

// Match owns one game's state and advances it on Tick.
type Match struct {
	state MatchState
	epoch uint64

	clock    clock.Clock
	rng      object.Rand
	renderer Renderer
	hud      HUD
	store    highscore.Store
	logger   *log.Logger

	highScore int
	result    *Result

	// Presentation bookkeeping, never read by the simulation.
	effects   *fx.Scheduler
	views     map[int]draw.SpriteHandle
	flashing  bool
	flashTask uint64

	enemyGrid   *physics.SpatialGrid
	barrierGrid *physics.SpatialGrid
}

// NewMatch creates an idle match. Call Reset to start playing.
func NewMatch(opts Options) *Match {
	m := &Match{
		clock:       opts.Clock,
		rng:         opts.Rand,
		renderer:    opts.Renderer,
		hud:         opts.HUD,
		store:       opts.Store,
		logger:      opts.Logger,
		effects:     fx.NewScheduler(),
		views:       make(map[int]draw.SpriteHandle),
		enemyGrid:   physics.NewSpatialGrid(config.StageWidth, config.StageHeight, config.CollisionCellSize),
		barrierGrid: physics.NewSpatialGrid(config.StageWidth, config.StageHeight, config.CollisionCellSize),
	}
	if m.clock == nil {
		m.clock = clock.NewSystem()
	}
	if m.rng == nil {
		seed := uint64(time.Now().UnixNano())
		m.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if m.renderer == nil {
		m.renderer = noopRenderer{}
	}
	if m.hud == nil {
		m.hud = noopHUD{}
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	return m
}

// Reset discards the current match and starts a new one. The returned epoch
// must accompany every Tick; ticks carrying an older epoch do nothing.
func (m *Match) Reset() uint64 {
	m.epoch++
	m.effects.CancelAll()
	m.renderer.Clear()
	clear(m.views)
	m.flashing = false
	m.flashTask = 0
	m.result = nil

	now := m.clock.Now()
	m.state = MatchState{
		Running:         true,
		Lives:           config.InitialLives,
		MarchDirection:  1,
		EnemyNextMoveAt: now + config.EnemyMoveInterval,
		StartedAt:       now,
		LastFrame:       now,
	}
	st := &m.state

	st.Player = object.NewPlayer(st.ids.Next())
	m.createView(st.Player.ID, config.PlayerGlyph, st.Player.Facing.Tag())
	m.place(st.Player.ID, st.Player.X, st.Player.Y)

	spawner := object.NewSpawner(m.rng, &st.ids)
	st.Enemies = spawner.EnemyGrid(now)
	for _, e := range st.Enemies {
		m.createView(e.ID, enemyGlyph(e.Type))
		m.place(e.ID, e.X, e.Y)
	}
	st.Barriers = spawner.Barriers()
	for _, b := range st.Barriers {
		m.createView(b.ID, config.BarrierGlyphs[b.Variant], b.Tier().Tag())
		m.place(b.ID, b.X, b.Y)
	}

	m.loadHighScore()
	m.pushHUD(now)
	m.logger.Debug("match started", "epoch", m.epoch, "enemies", len(st.Enemies), "barriers", len(st.Barriers))
	return m.epoch
}

// FlushEffects runs visual effects that are due. Call it every frame, also
// after the match has ended, so the last explosions clear.
func (m *Match) FlushEffects() int {
	return m.effects.Run(m.clock.Now())
}

// Epoch returns the current epoch.
func (m *Match) Epoch() uint64 {
	return m.epoch
}

// State exposes the match state for inspection. Callers must not modify it.
func (m *Match) State() *MatchState {
	return &m.state
}

// HighScore returns the best known score.
func (m *Match) HighScore() int {
	return m.highScore
}

// Result returns the summary of the finished match, or nil while playing.
func (m *Match) Result() *Result {
	return m.result
}

// Elapsed returns the match time, frozen at the end.
func (m *Match) Elapsed() time.Duration {
	return m.state.Elapsed(m.clock.Now())
}

func (m *Match) pushHUD(now time.Duration) {
	st := &m.state
	elapsed := st.Elapsed(now)
	bonus := ComputeTimeBonus(elapsed)
	if st.GameOver {
		bonus = st.TimeBonusAward
	}
	m.hud.Update(HUDState{
		Score:       st.Score,
		Lives:       st.Lives,
		Elapsed:     FormatTime(elapsed),
		TimeBonus:   bonus,
		BonusActive: st.Player.HasBonus,
		HighScore:   m.highScore,
	})
}

// createView creates the sprite representing entity id.
func (m *Match) createView(id int, glyph string, tags ...string) {
	m.views[id] = m.renderer.CreateSprite(glyph, tags...)
}

func (m *Match) place(id int, x, y float64) {
	if h, ok := m.views[id]; ok {
		m.renderer.PositionSprite(h, x, y)
	}
}

func (m *Match) retag(id int, tags ...string) {
	if h, ok := m.views[id]; ok {
		m.renderer.TagSprite(h, tags...)
	}
}

func (m *Match) dropView(id int) {
	if h, ok := m.views[id]; ok {
		m.renderer.RemoveSprite(h)
		delete(m.views, id)
	}
}

func enemyGlyph(t object.EnemyType) string {
	switch t {
	case object.EnemyGhost:
		return config.GhostEnemyGlyph
	case object.EnemySquid:
		return config.SquidEnemyGlyph
	default:
		return config.BasicEnemyGlyph
	}
}

type noopRenderer struct{}

func (noopRenderer) CreateSprite(string, ...string) draw.SpriteHandle   { return 0 }
func (noopRenderer) PositionSprite(draw.SpriteHandle, float64, float64) {}
func (noopRenderer) TagSprite(draw.SpriteHandle, ...string)             {}
func (noopRenderer) RemoveSprite(draw.SpriteHandle)                     {}
func (noopRenderer) Clear()                                             {}

type noopHUD struct{}

func (noopHUD) Update(HUDState) {}

var (
	_ Renderer = (*draw.SpriteTable)(nil)
	_ Renderer = noopRenderer{}
)
