// Package object defines the simulation entities.
// Entities are plain records: they carry geometry and timers but never touch
// presentation. Views are tracked separately, keyed by entity ID.
package object

import (
	"github.com/tomz197/invaders/internal/physics"
)

// Rand is the random source used for spawning and AI decisions.
// *math/rand/v2.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// IDSource hands out entity IDs unique within one match.
type IDSource struct {
	last int
}

// Next returns a fresh ID.
func (s *IDSource) Next() int {
	s.last++
	return s.last
}

// Box is implemented by everything that takes part in collisions.
type Box interface {
	Bounds() physics.Rect
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Compact removes destroyed items in place, preserving order.
// onRemove, when non-nil, is called for each removed item.
func Compact[T Destructible](items []T, onRemove func(T)) []T {
	kept := items[:0]
	for _, it := range items {
		if it.IsDestroyed() {
			if onRemove != nil {
				onRemove(it)
			}
			continue
		}
		kept = append(kept, it)
	}
	// Drop references held past the new length.
	clear(items[len(kept):])
	return kept
}
