package loop

import (
	"github.com/tomz197/invaders/internal/input"
)

// Tick advances the match by one frame. It does nothing and returns false
// when epoch is stale or the match is not running; otherwise it returns
// whether the match is still running afterwards.
func (m *Match) Tick(epoch uint64, in input.Input) bool {
	if epoch != m.epoch || !m.state.Running {
		return false
	}

	now := m.clock.Now()
	dt := max(0, now-m.state.LastFrame)
	m.state.LastFrame = now

	m.updateBonusStatus(now)
	m.updatePlayer(dt, in)
	m.tryShootPlayer(now)
	m.updateEnemies(now)
	m.updateProjectiles(dt)
	m.detectCollisions(now)
	m.checkWinLose(now)
	m.pushHUD(now)

	return m.state.Running
}
