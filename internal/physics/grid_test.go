package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpatialGrid_QueryAroundSkipsOutsideStage(t *testing.T) {
	g := NewSpatialGrid(720, 700, 64)
	g.Insert(0, 0, 1)
	g.Insert(700, 680, 2)

	var seen []int
	g.QueryAround(5, 5, func(i int) bool {
		seen = append(seen, i)
		return false
	})
	assert.Equal(t, []int{1}, seen, "corner query must not wrap to the opposite edge")
}

func TestSpatialGrid_ClearKeepsCells(t *testing.T) {
	g := NewSpatialGrid(128, 128, 64)
	g.Insert(10, 10, 0)
	g.Clear()

	called := false
	g.QueryAround(10, 10, func(int) bool {
		called = true
		return false
	})
	assert.False(t, called)
}

func TestSpatialGrid_FirstOverlapPrefersLowestIndex(t *testing.T) {
	boxes := []Rect{
		{X: 200, Y: 200, W: 32, H: 32},
		{X: 130, Y: 100, W: 32, H: 32}, // different cell from index 2
		{X: 100, Y: 100, W: 32, H: 32},
	}
	g := NewSpatialGrid(720, 700, 64)
	// Insert in reverse so cell iteration order differs from index order.
	for i := len(boxes) - 1; i >= 0; i-- {
		g.Insert(boxes[i].X, boxes[i].Y, i)
	}
	bounds := func(i int) Rect { return boxes[i] }

	shot := Rect{X: 120, Y: 105, W: 24, H: 24}
	assert.Equal(t, 1, g.FirstOverlap(shot, bounds, nil))

	skipFirst := func(i int) bool { return i == 1 }
	assert.Equal(t, 2, g.FirstOverlap(shot, bounds, skipFirst))

	miss := Rect{X: 500, Y: 500, W: 24, H: 24}
	assert.Equal(t, -1, g.FirstOverlap(miss, bounds, nil))
}

func TestSpatialGrid_OffStagePositionsClamp(t *testing.T) {
	g := NewSpatialGrid(720, 700, 64)
	g.Insert(10, 10, 7)

	found := g.FirstOverlap(Rect{X: -20, Y: -15, W: 24, H: 24}, func(int) Rect {
		return Rect{X: 10, Y: 10, W: 32, H: 32}
	}, nil)
	assert.Equal(t, -1, found)

	found = g.FirstOverlap(Rect{X: -10, Y: -10, W: 24, H: 24}, func(int) Rect {
		return Rect{X: 10, Y: 10, W: 32, H: 32}
	}, nil)
	assert.Equal(t, 7, found)
}
