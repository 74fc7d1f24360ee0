package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSetIsIdempotent(t *testing.T) {
	ts := loadFixture(t)
	layer := NewLayer()
	g := NewGridStore(4, 4, 16, layer)
	a := ts.TileByID(1)

	require.True(t, g.Set(image.Pt(1, 1), ts, a))
	first := g.Get(image.Pt(1, 1))
	require.NotNil(t, first)

	assert.False(t, g.Set(image.Pt(1, 1), ts, a))
	assert.Same(t, first, g.Get(image.Pt(1, 1)))
	assert.Equal(t, 1, layer.Len())
	assert.True(t, layer.Has(first.Handle()))
}

func TestGridSetReplacesDifferentTile(t *testing.T) {
	ts := loadFixture(t)
	layer := NewLayer()
	g := NewGridStore(4, 4, 16, layer)

	g.Set(image.Pt(2, 3), ts, ts.TileByID(1))
	old := g.Get(image.Pt(2, 3)).Handle()

	require.True(t, g.Set(image.Pt(2, 3), ts, ts.TileByID(2)))
	cur := g.Get(image.Pt(2, 3))

	assert.Equal(t, "b", cur.Tile.Name)
	assert.False(t, layer.Has(old))
	assert.Equal(t, 1, layer.Len())
	assert.Equal(t, 1, g.Len())

	v, ok := layer.Get(cur.Handle())
	require.True(t, ok)
	assert.Equal(t, image.Pt(32, 48), v.Pos)
}

func TestGridOutOfBoundsIsNoop(t *testing.T) {
	ts := loadFixture(t)
	layer := NewLayer()
	g := NewGridStore(4, 4, 16, layer)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		assert.False(t, g.Set(p, ts, ts.TileByID(1)), "set %v", p)
		assert.Nil(t, g.Get(p), "get %v", p)
		assert.False(t, g.Remove(p), "remove %v", p)
	}
	assert.Equal(t, 0, layer.Len())
}

func TestGridRemove(t *testing.T) {
	ts := loadFixture(t)
	layer := NewLayer()
	g := NewGridStore(4, 4, 16, layer)

	assert.False(t, g.Remove(image.Pt(0, 0)), "empty cell")

	g.Set(image.Pt(0, 0), ts, ts.TileByID(1))
	h := g.Get(image.Pt(0, 0)).Handle()
	assert.True(t, g.Remove(image.Pt(0, 0)))
	assert.Nil(t, g.Get(image.Pt(0, 0)))
	assert.False(t, layer.Has(h))
	assert.Equal(t, 0, g.Len())
}

func TestGridEachRowMajor(t *testing.T) {
	ts := loadFixture(t)
	g := NewGridStore(3, 3, 16, NewLayer())
	g.Set(image.Pt(2, 0), ts, ts.TileByID(1))
	g.Set(image.Pt(0, 1), ts, ts.TileByID(1))
	g.Set(image.Pt(1, 0), ts, ts.TileByID(2))

	var cells []image.Point
	g.Each(func(p image.Point, _ *MapTile) { cells = append(cells, p) })
	assert.Equal(t, []image.Point{{1, 0}, {2, 0}, {0, 1}}, cells)
}
