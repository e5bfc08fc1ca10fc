package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// updateEnemies runs the formation march and enemy fire. The formation only
// steps when its move timer is due; bursts are polled every frame.
func (m *Match) updateEnemies(now time.Duration) {
	st := &m.state
	if len(st.Enemies) == 0 {
		return
	}
	if now < st.EnemyNextMoveAt {
		m.updateSpecialBursts(now)
		return
	}

	if m.formationWillHitEdge() {
		for _, e := range st.Enemies {
			e.Y += config.EnemyDescent
			m.place(e.ID, e.X, e.Y)
		}
		st.MarchDirection = -st.MarchDirection
	} else {
		step := config.EnemyStep * float64(st.MarchDirection)
		for _, e := range st.Enemies {
			e.X += step
			m.place(e.ID, e.X, e.Y)
		}
		if m.rng.Float64() < config.EnemyShotChancePerStep {
			m.fireRandomBasic()
		}
	}
	m.updateSpecialBursts(now)

	st.EnemyNextMoveAt = now + moveInterval(len(st.Enemies))
}

// formationWillHitEdge reports whether the next lateral step would carry any
// enemy past the side padding.
func (m *Match) formationWillHitEdge() bool {
	step := config.EnemyStep * float64(m.state.MarchDirection)
	for _, e := range m.state.Enemies {
		x := e.X + step
		if x < config.EnemySidePadding || x > config.StageWidth-config.EnemySidePadding {
			return true
		}
	}
	return false
}

// fireRandomBasic picks a basic enemy at random and fires an aimed shot at the player.
func (m *Match) fireRandomBasic() {
	var shooters []*object.Enemy
	for _, e := range m.state.Enemies {
		if e.Type == object.EnemyBasic {
			shooters = append(shooters, e)
		}
	}
	if len(shooters) == 0 {
		return
	}

	e := shooters[m.rng.IntN(len(shooters))]
	p := m.state.Player
	x, y := e.Muzzle()
	vx, vy := physics.Aim(x, y, p.X+config.AimOffsetX, p.Y, config.BasicProjectileSpeed)
	m.spawnProjectile(object.SourceEnemy, x, y, vx, vy)
}

// updateSpecialBursts advances the burst fire of ghost and squid enemies.
func (m *Match) updateSpecialBursts(now time.Duration) {
	for _, e := range m.state.Enemies {
		if !e.Type.IsSpecial() {
			continue
		}

		if e.BurstLeft > 0 {
			if now < e.NextShotAt {
				continue
			}
			x, y := e.Muzzle()
			m.spawnProjectile(object.SourceEnemy, x, y, 0, e.Type.ProjectileSpeed())
			e.BurstLeft--
			e.NextShotAt += config.SpecialShotGap
			if e.BurstLeft == 0 {
				e.NextBurstAt = now + config.SpecialReload + m.jitter(config.SpecialReloadJitter)
			}
			continue
		}

		if now >= e.NextBurstAt {
			e.BurstLeft = config.SpecialBurstCount
			e.NextShotAt = now
		}
	}
}

// moveInterval returns the delay before the next formation step. The march
// speeds up as the formation thins out.
func moveInterval(remaining int) time.Duration {
	frac := 1 - float64(remaining)/float64(config.EnemyTotal)
	speedup := time.Duration(physics.Clamp(frac*float64(config.EnemyMaxSpeedup), 0, float64(config.EnemyMaxSpeedup)))
	return max(config.EnemyMinMoveInterval, config.EnemyMoveInterval-speedup)
}

// jitter returns a random duration in [0, span).
func (m *Match) jitter(span time.Duration) time.Duration {
	return time.Duration(m.rng.Float64() * float64(span))
}
