// Package draw renders the stage to an ANSI terminal: a half-block canvas for
// static scenery, a sprite table for glyphs and text, and a small theme.
package draw

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Shades from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for an intensity between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	return Shades[int(intensity*float64(len(Shades)-1))]
}

// Block characters used by the canvas.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Meter renders frac (0..1) as a bar of width cells; partial cells are shaded.
func Meter(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac = max(0, min(1, frac))
	filled := frac * float64(width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		b.WriteRune(ShadeLevel(filled - float64(i)))
	}
	return b.String()
}

// Width returns the number of terminal cells s occupies. Emoji take two.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
