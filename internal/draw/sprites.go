package draw

import (
	"maps"
	"slices"
	"strings"
)

// SpriteHandle identifies a sprite in a SpriteTable.
type SpriteHandle int

// Sprite is a glyph (or short text) placed on the stage.
type Sprite struct {
	Glyph  string
	X, Y   float64 // Stage coordinates of the top-left corner
	Tags   []string
	Placed bool // False until the first PositionSprite
}

// HasTag reports whether the sprite carries tag.
func (s Sprite) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

type cellPos struct {
	col, row int
}

type placedSprite struct {
	pos  cellPos
	text string
}

// SpriteTable owns the sprites of one terminal and redraws them frame by
// frame, erasing only cells that were drawn before and are now empty.
type SpriteTable struct {
	last    SpriteHandle
	sprites map[SpriteHandle]*Sprite

	drawn map[cellPos]int // Widths written last frame
	frame map[cellPos]int
	out   []placedSprite
}

// NewSpriteTable creates an empty table.
func NewSpriteTable() *SpriteTable {
	return &SpriteTable{
		sprites: make(map[SpriteHandle]*Sprite),
		drawn:   make(map[cellPos]int),
		frame:   make(map[cellPos]int),
	}
}

// CreateSprite adds a sprite. It stays hidden until positioned.
func (t *SpriteTable) CreateSprite(glyph string, tags ...string) SpriteHandle {
	t.last++
	t.sprites[t.last] = &Sprite{Glyph: glyph, Tags: slices.Clone(tags)}
	return t.last
}

// PositionSprite moves a sprite. Unknown handles are ignored.
func (t *SpriteTable) PositionSprite(h SpriteHandle, x, y float64) {
	if s, ok := t.sprites[h]; ok {
		s.X, s.Y = x, y
		s.Placed = true
	}
}

// TagSprite replaces a sprite's tags. Unknown handles are ignored.
func (t *SpriteTable) TagSprite(h SpriteHandle, tags ...string) {
	if s, ok := t.sprites[h]; ok {
		s.Tags = append(s.Tags[:0], tags...)
	}
}

// RemoveSprite deletes a sprite. Unknown handles are ignored.
func (t *SpriteTable) RemoveSprite(h SpriteHandle) {
	delete(t.sprites, h)
}

// Clear removes every sprite.
func (t *SpriteTable) Clear() {
	clear(t.sprites)
}

// Len returns the number of live sprites.
func (t *SpriteTable) Len() int {
	return len(t.sprites)
}

// Get returns a copy of the sprite behind h.
func (t *SpriteTable) Get(h SpriteHandle) (Sprite, bool) {
	s, ok := t.sprites[h]
	if !ok {
		return Sprite{}, false
	}
	cp := *s
	cp.Tags = slices.Clone(s.Tags)
	return cp, true
}

// Forget drops the record of what is on screen. Call it after clearing the terminal.
func (t *SpriteTable) Forget() {
	clear(t.drawn)
}

// Render draws all placed sprites that fit the canvas area, in creation order.
func (t *SpriteTable) Render(cw *ChunkWriter, c *Canvas, theme *Theme) {
	clear(t.frame)
	t.out = t.out[:0]

	for _, h := range slices.Sorted(maps.Keys(t.sprites)) {
		s := t.sprites[h]
		if !s.Placed {
			continue
		}
		col, row := c.LogicalToTerminal(s.X, s.Y)
		w := Width(s.Glyph)
		if col < 1 || row < 1 || col+w-1 > c.TerminalWidth() || row > c.TerminalHeight() {
			continue
		}
		pos := cellPos{col, row}
		t.frame[pos] = max(t.frame[pos], w)
		t.out = append(t.out, placedSprite{pos: pos, text: theme.Sprite(s.Glyph, s.Tags)})
	}

	for pos, w := range t.drawn {
		if fw, ok := t.frame[pos]; !ok || fw < w {
			cw.WriteAt(pos.col, pos.row, strings.Repeat(" ", w))
		}
	}
	for _, p := range t.out {
		cw.WriteAt(p.pos.col, p.pos.row, p.text)
	}

	t.drawn, t.frame = t.frame, t.drawn
}
