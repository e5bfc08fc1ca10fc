package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 32, H: 32}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"contained", Rect{X: 20, Y: 20, W: 4, H: 4}, true},
		{"partial", Rect{X: 30, Y: 30, W: 24, H: 24}, true},
		{"touching right edge", Rect{X: 42, Y: 10, W: 24, H: 24}, true},
		{"touching bottom edge", Rect{X: 10, Y: 42, W: 24, H: 24}, true},
		{"just right", Rect{X: 42.01, Y: 10, W: 24, H: 24}, false},
		{"above", Rect{X: 10, Y: -30, W: 24, H: 24}, false},
		{"left", Rect{X: -20, Y: 10, W: 24, H: 24}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(base, tt.other))
			assert.Equal(t, tt.want, Overlaps(tt.other, base), "overlap must be symmetric")
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 8.0, Clamp(-5, 8, 680))
	assert.Equal(t, 680.0, Clamp(900, 8, 680))
	assert.Equal(t, 300.0, Clamp(300, 8, 680))
}

func TestAim(t *testing.T) {
	vx, vy := Aim(0, 0, 30, 40, 320)
	assert.InDelta(t, 192.0, vx, 1e-9)
	assert.InDelta(t, 256.0, vy, 1e-9)
	assert.InDelta(t, 320.0, math.Hypot(vx, vy), 1e-9)

	// Coincident points must not produce NaN.
	vx, vy = Aim(5, 5, 5, 5, 320)
	assert.Equal(t, 0.0, vx)
	assert.Equal(t, 0.0, vy)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(1, 1, 4, 5), 1e-9)
}
