// Package physics provides collision detection and motion utilities.
package physics

import "math"

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Size
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether two boxes intersect. Touching edges count as overlap.
func Overlaps(a, b Rect) bool {
	return !(a.Right() < b.X || a.X > b.Right() || a.Bottom() < b.Y || a.Y > b.Bottom())
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Aim returns a velocity of the given speed pointing from (sx,sy) toward (tx,ty).
// The divisor never drops below 1, so coincident points yield a short vector instead of NaN.
func Aim(sx, sy, tx, ty, speed float64) (vx, vy float64) {
	mag := math.Max(1, Distance(sx, sy, tx, ty))
	return (tx - sx) / mag * speed, (ty - sy) / mag * speed
}
