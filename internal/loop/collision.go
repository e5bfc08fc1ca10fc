package loop

import (
	"strconv"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// detectCollisions resolves every live projectile against at most one target.
// Player shots test enemies before barriers; enemy shots test the player
// before barriers. Destroyed entities are compacted afterwards.
func (m *Match) detectCollisions(now time.Duration) {
	st := &m.state

	m.enemyGrid.Clear()
	for i, e := range st.Enemies {
		m.enemyGrid.Insert(e.X, e.Y, i)
	}
	m.barrierGrid.Clear()
	for i, b := range st.Barriers {
		m.barrierGrid.Insert(b.X, b.Y, i)
	}

	enemyBounds := func(i int) physics.Rect { return st.Enemies[i].Bounds() }
	enemyGone := func(i int) bool { return st.Enemies[i].IsDestroyed() }

	for _, p := range st.Projectiles {
		if p.IsDestroyed() {
			continue
		}
		box := p.Bounds()

		switch p.Source {
		case object.SourcePlayer:
			if i := m.enemyGrid.FirstOverlap(box, enemyBounds, enemyGone); i >= 0 {
				p.MarkDestroyed()
				m.killEnemy(st.Enemies[i], now)
				continue
			}
		case object.SourceEnemy:
			if physics.Overlaps(box, st.Player.Bounds()) {
				p.MarkDestroyed()
				m.harmPlayer(now)
				continue
			}
		}

		if b := m.firstBarrier(box); b != nil {
			p.MarkDestroyed()
			m.damageBarrier(b)
		}
	}

	st.Enemies = object.Compact(st.Enemies, func(e *object.Enemy) { m.dropView(e.ID) })
	st.Barriers = object.Compact(st.Barriers, func(b *object.Barrier) { m.dropView(b.ID) })
	m.compactProjectiles()
}

func (m *Match) firstBarrier(box physics.Rect) *object.Barrier {
	barriers := m.state.Barriers
	i := m.barrierGrid.FirstOverlap(box,
		func(i int) physics.Rect { return barriers[i].Bounds() },
		func(i int) bool { return barriers[i].IsDestroyed() },
	)
	if i < 0 {
		return nil
	}
	return barriers[i]
}

// killEnemy scores an enemy, shows its explosion and score text, and grants
// the bonus weapon for special kills.
func (m *Match) killEnemy(e *object.Enemy, now time.Duration) {
	e.MarkDestroyed()

	points := e.Type.Score()
	m.addScore(points)
	if e.Type.IsSpecial() {
		m.activateBonus(now)
	}

	m.flashSprite(now, explosionGlyph(e.Type), e.X, e.Y, config.ExplosionLifetime, draw.TagExplosion, e.Type.String())
	m.flashSprite(now, "+"+strconv.Itoa(points), e.X, e.Y-config.EnemySize/2, config.FloatTextLifetime, draw.TagFloatText)

	m.logger.Debug("enemy destroyed", "type", e.Type, "points", points, "score", m.state.Score)
}

// harmPlayer takes a life and flashes the player sprite.
func (m *Match) harmPlayer(now time.Duration) {
	st := &m.state
	st.Lives = max(0, st.Lives-1)

	m.flashing = true
	m.retagPlayer()
	m.effects.Cancel(m.flashTask)
	m.flashTask = m.effects.After(now, config.HitFlashLifetime, func() {
		m.flashing = false
		m.retagPlayer()
	})

	m.logger.Debug("player hit", "lives", st.Lives)
}

// damageBarrier takes one hit point and refreshes the tier tag.
func (m *Match) damageBarrier(b *object.Barrier) {
	if b.Damage() {
		return
	}
	m.retag(b.ID, b.Tier().Tag())
}

// flashSprite shows a short-lived sprite that is not backed by an entity.
func (m *Match) flashSprite(now time.Duration, glyph string, x, y float64, lifetime time.Duration, tags ...string) {
	h := m.renderer.CreateSprite(glyph, tags...)
	m.renderer.PositionSprite(h, x, y)
	m.effects.After(now, lifetime, func() {
		m.renderer.RemoveSprite(h)
	})
}

func explosionGlyph(t object.EnemyType) string {
	switch t {
	case object.EnemyGhost:
		return config.GhostExplosionGlyph
	case object.EnemySquid:
		return config.SquidExplosionGlyph
	default:
		return config.BasicExplosionGlyph
	}
}
