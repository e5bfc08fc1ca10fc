package object

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Facing is the horizontal direction the player sprite looks at.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Tag returns the presentation tag for the facing.
func (f Facing) Tag() string {
	if f == FacingLeft {
		return "facing-left"
	}
	return "facing-right"
}

// Player is the defender at the bottom of the stage.
type Player struct {
	ID     int
	X, Y   float64 // Top-left corner
	W, H   float64
	Facing Facing

	CanShootAfter time.Duration // Next auto-fire is allowed at or after this time
	HasBonus      bool          // Bonus weapon active (shorter cooldown)
	BonusEndsAt   time.Duration
}

// NewPlayer creates the player at the spawn position.
func NewPlayer(id int) *Player {
	return &Player{
		ID:     id,
		X:      config.StageWidth / 2,
		Y:      config.StageHeight - config.PlayerStartOffset,
		W:      config.PlayerSize,
		H:      config.PlayerSize,
		Facing: FacingRight,
	}
}

// Bounds returns the player's collision box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// ShotCooldown returns the delay between shots for the current weapon.
func (p *Player) ShotCooldown() time.Duration {
	if p.HasBonus {
		return config.PlayerBonusShotCooldown
	}
	return config.PlayerShotCooldown
}
