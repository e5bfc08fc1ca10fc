package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/object"
)

// MatchState is everything the simulation owns for one match.
// Entities are plain records; presentation handles live in Match.views.
type MatchState struct {
	Running  bool
	GameOver bool
	Victory  bool

	Score int
	Lives int

	Player      *object.Player
	Enemies     []*object.Enemy // Insertion order
	Projectiles []*object.Projectile
	Barriers    []*object.Barrier

	MarchDirection  int // -1 left, +1 right
	EnemyNextMoveAt time.Duration

	StartedAt      time.Duration
	LastFrame      time.Duration
	EndedAt        time.Duration
	TimeBonusAward int // Added to Score once, at the end

	ids object.IDSource
}

// Elapsed returns match time at now, frozen once the match has ended.
func (s *MatchState) Elapsed(now time.Duration) time.Duration {
	if s.GameOver {
		now = s.EndedAt
	}
	return max(0, now-s.StartedAt)
}

// Result summarizes a finished match.
type Result struct {
	Victory   bool
	Score     int
	TimeBonus int
	Elapsed   time.Duration
	HighScore int
}
