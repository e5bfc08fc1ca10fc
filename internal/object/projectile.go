package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Source identifies who fired a projectile.
type Source int

const (
	SourcePlayer Source = iota
	SourceEnemy
)

func (s Source) String() string {
	if s == SourceEnemy {
		return "enemy"
	}
	return "player"
}

// Projectile is a shot travelling in a straight line.
type Projectile struct {
	ID     int
	X, Y   float64 // Top-left corner
	W, H   float64
	VX, VY float64 // Velocity in pixels per second
	Source Source

	destroyed bool
}

// NewProjectile creates a projectile at (x,y) with velocity (vx,vy).
func NewProjectile(id int, source Source, x, y, vx, vy float64) *Projectile {
	return &Projectile{
		ID:     id,
		X:      x,
		Y:      y,
		W:      config.ProjectileSize,
		H:      config.ProjectileSize,
		VX:     vx,
		VY:     vy,
		Source: source,
	}
}

// Advance integrates the position over dt seconds.
func (p *Projectile) Advance(dt float64) {
	p.X += p.VX * dt
	p.Y += p.VY * dt
}

// OnStage reports whether the projectile is still inside the stage expanded by the pruning margins.
func (p *Projectile) OnStage() bool {
	return p.X > -config.ProjectileMarginX && p.X < config.StageWidth+config.ProjectileMarginX &&
		p.Y > -config.ProjectileMarginY && p.Y < config.StageHeight+config.ProjectileMarginY
}

// Bounds returns the projectile's collision box.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}
