package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// BarrierTier is the visual intensity derived from remaining hit points.
type BarrierTier int

const (
	BarrierHigh BarrierTier = iota
	BarrierMid
	BarrierLow
)

// Tag returns the presentation tag for the tier.
func (t BarrierTier) Tag() string {
	switch t {
	case BarrierHigh:
		return "barrier-high"
	case BarrierMid:
		return "barrier-mid"
	default:
		return "barrier-low"
	}
}

// Barrier is one destructible cell of a defensive column.
type Barrier struct {
	ID      int
	X, Y    float64 // Top-left corner
	W, H    float64
	HP      int
	MaxHP   int
	Variant int // Decorative glyph index
}

// NewBarrier creates a barrier cell with full hit points.
func NewBarrier(id int, x, y float64, variant int) *Barrier {
	return &Barrier{
		ID:      id,
		X:       x,
		Y:       y,
		W:       config.BarrierSize,
		H:       config.BarrierSize,
		HP:      config.BarrierHP,
		MaxHP:   config.BarrierHP,
		Variant: variant,
	}
}

// Damage takes one hit point. Returns true when the barrier is gone.
func (b *Barrier) Damage() bool {
	if b.HP > 0 {
		b.HP--
	}
	return b.HP <= 0
}

// Tier returns the intensity tier for the current hit point ratio.
func (b *Barrier) Tier() BarrierTier {
	ratio := float64(b.HP) / float64(b.MaxHP)
	switch {
	case ratio > 0.66:
		return BarrierHigh
	case ratio > 0.33:
		return BarrierMid
	default:
		return BarrierLow
	}
}

// Bounds returns the barrier's collision box.
func (b *Barrier) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// MarkDestroyed drops the barrier's remaining hit points.
func (b *Barrier) MarkDestroyed() {
	b.HP = 0
}

// IsDestroyed returns true once no hit points remain.
func (b *Barrier) IsDestroyed() bool {
	return b.HP <= 0
}
