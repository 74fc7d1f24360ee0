package editor

import (
	"image"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pixel2d/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeAt(si *SpriteIndex, ts *tileset.Tileset, id int, cell image.Point) *MapSprite {
	s := &MapSprite{Tileset: ts, Entity: ts.EntityByID(id), Cell: cell, Pos: cell.Mul(16)}
	si.Push(cell, s)
	return s
}

func TestSpriteIndexStack(t *testing.T) {
	ts := loadFixture(t)
	si := NewSpriteIndex(4, 4, 16)

	assert.Nil(t, si.Peek(image.Pt(1, 1)))
	assert.Nil(t, si.Pop(image.Pt(1, 1)))

	first := placeAt(si, ts, 4, image.Pt(1, 1))
	second := placeAt(si, ts, 4, image.Pt(1, 1))

	assert.Same(t, second, si.Peek(image.Pt(1, 1)))
	assert.Equal(t, 2, si.Len())
	assert.Equal(t, []*MapSprite{first, second}, si.Stack(image.Pt(1, 1)))

	assert.Same(t, second, si.Pop(image.Pt(1, 1)))
	assert.Same(t, first, si.Pop(image.Pt(1, 1)))
	assert.Nil(t, si.Pop(image.Pt(1, 1)))
	assert.Equal(t, 0, si.Len())

	assert.False(t, si.Push(image.Pt(4, 0), first), "outside the map")
}

func TestSpriteIndexCollides(t *testing.T) {
	ts := loadFixture(t)
	crate := ts.EntityByID(1)
	grass := ts.EntityByID(4)

	si := NewSpriteIndex(8, 8, 16)
	placeAt(si, ts, 1, image.Pt(2, 2))
	placeAt(si, ts, 4, image.Pt(5, 5))

	cases := []struct {
		name   string
		cell   image.Point
		entity *tileset.Entity
		want   bool
	}{
		{"same_cell", image.Pt(2, 2), crate, true},
		{"edge_left", image.Pt(1, 2), crate, false},
		{"edge_right", image.Pt(3, 2), crate, false},
		{"edge_below", image.Pt(2, 3), crate, false},
		{"corner", image.Pt(3, 3), crate, false},
		{"no_box_candidate", image.Pt(2, 2), grass, false},
		{"over_unboxed_sprite", image.Pt(5, 5), crate, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, si.Collides(c.cell, c.entity))
		})
	}
}

func TestSpriteIndexCollidesUsesTranslatedBox(t *testing.T) {
	ts := loadFixture(t)
	si := NewSpriteIndex(8, 8, 16)
	// tall's box spans y 14..30 inside its cell, reaching into the row below
	placeAt(si, ts, 2, image.Pt(0, 0))

	assert.True(t, si.Collides(image.Pt(0, 1), ts.EntityByID(1)))
	assert.False(t, si.Collides(image.Pt(1, 1), ts.EntityByID(1)))
}

func TestSpriteIndexSpritesAt(t *testing.T) {
	ts := loadFixture(t)
	si := NewSpriteIndex(8, 8, 16)
	a := placeAt(si, ts, 4, image.Pt(1, 1))
	b := placeAt(si, ts, 2, image.Pt(1, 0))

	got := si.SpritesAt(cp.Vector{X: 20, Y: 17})
	assert.ElementsMatch(t, []*MapSprite{a, b}, got)

	assert.Equal(t, []*MapSprite{b}, si.SpritesAt(cp.Vector{X: 16, Y: 0}))
	assert.Empty(t, si.SpritesAt(cp.Vector{X: 32, Y: 20}), "right edge is exclusive")
}

func TestMapSpriteBoundingBox(t *testing.T) {
	ts := loadFixture(t)
	s := &MapSprite{Entity: ts.EntityByID(2), Pos: image.Pt(32, 16)}

	bb, ok := s.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, cp.BB{L: 32, B: 30, R: 48, T: 46}, bb)
	assert.Equal(t, 46, s.SortKey())

	s = &MapSprite{Entity: ts.EntityByID(4), Pos: image.Pt(0, 0)}
	_, ok = s.BoundingBox()
	assert.False(t, ok)
	assert.Equal(t, 16, s.SortKey())
}
