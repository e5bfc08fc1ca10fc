package object

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// EnemyType represents the kind of invader.
type EnemyType int

const (
	EnemyBasic EnemyType = iota
	EnemyGhost
	EnemySquid
)

func (t EnemyType) String() string {
	switch t {
	case EnemyGhost:
		return "ghost"
	case EnemySquid:
		return "squid"
	default:
		return "basic"
	}
}

// IsSpecial reports whether the type fires bursts and grants the bonus weapon.
func (t EnemyType) IsSpecial() bool {
	return t == EnemyGhost || t == EnemySquid
}

// Score returns the points awarded for destroying an enemy of this type.
func (t EnemyType) Score() int {
	if t.IsSpecial() {
		return config.ScoreSpecial
	}
	return config.ScoreBasic
}

// ProjectileSpeed returns the burst projectile speed for special types.
func (t EnemyType) ProjectileSpeed() float64 {
	switch t {
	case EnemyGhost:
		return config.GhostProjectileSpeed
	case EnemySquid:
		return config.SquidProjectileSpeed
	default:
		return config.BasicProjectileSpeed
	}
}

// Enemy is a member of the invading formation.
type Enemy struct {
	ID   int
	X, Y float64 // Top-left corner
	W, H float64
	Type EnemyType

	// Burst state, used by special types only.
	NextBurstAt time.Duration
	NextShotAt  time.Duration
	BurstLeft   int

	destroyed bool
}

// NewEnemy creates an enemy of the given type at (x,y).
func NewEnemy(id int, x, y float64, t EnemyType) *Enemy {
	return &Enemy{
		ID:   id,
		X:    x,
		Y:    y,
		W:    config.EnemySize,
		H:    config.EnemySize,
		Type: t,
	}
}

// Bounds returns the enemy's collision box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Muzzle returns the point shots leave from.
func (e *Enemy) Muzzle() (x, y float64) {
	return e.X + config.EnemyMuzzleX, e.Y + config.EnemyMuzzleY
}

// MarkDestroyed marks the enemy for removal (implements Destructible).
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction (implements Destructible).
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}
