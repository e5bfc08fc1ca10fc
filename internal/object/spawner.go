package object

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
)

// Spawner builds the initial enemy formation and barrier layout for a match.
type Spawner struct {
	rng Rand
	ids *IDSource
}

// NewSpawner creates a spawner drawing IDs from ids and randomness from rng.
func NewSpawner(rng Rand, ids *IDSource) *Spawner {
	return &Spawner{rng: rng, ids: ids}
}

// EnemyGrid builds the formation, centered horizontally.
// Only the top SpecialRows rows may hold special enemies; each special enemy
// gets its first burst scheduled after now plus a random delay.
func (s *Spawner) EnemyGrid(now time.Duration) []*Enemy {
	gridWidth := float64(config.EnemyColumns-1) * config.EnemyXSpacing
	startX := (config.StageWidth - gridWidth) / 2

	enemies := make([]*Enemy, 0, config.EnemyTotal)
	for r := 0; r < config.EnemyRows; r++ {
		for c := 0; c < config.EnemyColumns; c++ {
			t := s.enemyType(r)
			e := NewEnemy(
				s.ids.Next(),
				startX+float64(c)*config.EnemyXSpacing,
				config.EnemyTopOffset+float64(r)*config.EnemyYSpacing,
				t,
			)
			if t.IsSpecial() {
				e.NextBurstAt = now + config.SpecialFirstBurst + s.jitter(config.SpecialFirstBurstSpan)
			}
			enemies = append(enemies, e)
		}
	}
	return enemies
}

// Barriers builds BarrierColumns evenly spaced columns, each BarrierRows cells tall.
func (s *Spawner) Barriers() []*Barrier {
	usable := config.StageWidth - config.BarrierMarginX*2
	spacing := usable / float64(config.BarrierColumns-1)

	barriers := make([]*Barrier, 0, config.BarrierColumns*config.BarrierRows)
	for i := 0; i < config.BarrierColumns; i++ {
		x := config.BarrierMarginX + float64(i)*spacing - config.BarrierSize/2
		for r := 0; r < config.BarrierRows; r++ {
			y := config.StageHeight - config.BarrierBaseOffset - float64(r)*config.BarrierRowSpacing
			barriers = append(barriers, NewBarrier(s.ids.Next(), x, y, s.rng.IntN(config.BarrierVariants)))
		}
	}
	return barriers
}

// jitter returns a random duration in [0, span).
func (s *Spawner) jitter(span time.Duration) time.Duration {
	return time.Duration(s.rng.Float64() * float64(span))
}

func (s *Spawner) enemyType(row int) EnemyType {
	if row >= config.SpecialRows || s.rng.Float64() >= config.SpecialChance {
		return EnemyBasic
	}
	if s.rng.Float64() < 0.5 {
		return EnemyGhost
	}
	return EnemySquid
}
