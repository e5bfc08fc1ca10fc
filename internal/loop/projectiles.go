package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

func (m *Match) spawnProjectile(source object.Source, x, y, vx, vy float64) *object.Projectile {
	p := object.NewProjectile(m.state.ids.Next(), source, x, y, vx, vy)
	m.state.Projectiles = append(m.state.Projectiles, p)

	glyph := config.PlayerProjectileGlyph
	if source == object.SourceEnemy {
		glyph = config.EnemyProjectileGlyph
	}
	m.createView(p.ID, glyph, source.String())
	m.place(p.ID, p.X, p.Y)
	return p
}

// updateProjectiles integrates every projectile and prunes those that left
// the stage margins.
func (m *Match) updateProjectiles(dt time.Duration) {
	secs := dt.Seconds()
	for _, p := range m.state.Projectiles {
		p.Advance(secs)
		if !p.OnStage() {
			p.MarkDestroyed()
			continue
		}
		m.place(p.ID, p.X, p.Y)
	}
	m.compactProjectiles()
}

func (m *Match) compactProjectiles() {
	m.state.Projectiles = object.Compact(m.state.Projectiles, func(p *object.Projectile) {
		m.dropView(p.ID)
	})
}
