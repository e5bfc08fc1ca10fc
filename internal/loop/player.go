package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// updatePlayer moves the player from held keys. Both keys held cancel out.
func (m *Match) updatePlayer(dt time.Duration, in input.Input) {
	p := m.state.Player

	dir := 0.0
	if in.Left {
		dir--
	}
	if in.Right {
		dir++
	}
	vx := config.PlayerSpeed * dir

	p.X = physics.Clamp(p.X+vx*dt.Seconds(), config.PlayerMinX, config.StageWidth-config.PlayerMaxXInset)

	facing := p.Facing
	switch {
	case vx < 0:
		facing = object.FacingLeft
	case vx > 0:
		facing = object.FacingRight
	}
	if facing != p.Facing {
		p.Facing = facing
		m.retagPlayer()
	}
	m.place(p.ID, p.X, p.Y)
}

// tryShootPlayer auto-fires whenever the weapon cooldown has passed.
func (m *Match) tryShootPlayer(now time.Duration) {
	p := m.state.Player
	if now < p.CanShootAfter {
		return
	}
	m.spawnProjectile(object.SourcePlayer,
		p.X+config.PlayerMuzzleX, p.Y+config.PlayerMuzzleY,
		0, -config.PlayerProjectileSpeed)
	p.CanShootAfter = now + p.ShotCooldown()
}

// retagPlayer refreshes the player's tags: facing, plus the hit flash while it lasts.
func (m *Match) retagPlayer() {
	p := m.state.Player
	if m.flashing {
		m.retag(p.ID, p.Facing.Tag(), draw.TagHit)
		return
	}
	m.retag(p.ID, p.Facing.Tag())
}
