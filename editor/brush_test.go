package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrushSelectionIsExclusive(t *testing.T) {
	ts := loadFixture(t)
	b := NewBrush()

	assert.Equal(t, ModePencil, b.Mode())
	assert.False(t, b.IsValid())

	b.SetTile(ts, ts.TileByID(1))
	assert.True(t, b.IsValid())
	assert.True(t, b.IsTile())
	assert.Nil(t, b.Sprite())

	b.SetSprite(ts, ts.EntityByID(1))
	assert.True(t, b.IsValid())
	assert.False(t, b.IsTile())
	assert.Nil(t, b.Tile())
	assert.Equal(t, "crate", b.Sprite().Name)

	b.SetMode(ModeEraser)
	assert.Equal(t, ModeEraser, b.Mode())
	assert.True(t, b.IsValid(), "mode does not affect selection")

	b.SetTile(nil, ts.TileByID(1))
	assert.False(t, b.IsValid())
}

func TestBrushPaint(t *testing.T) {
	ts := loadFixture(t)
	b := NewBrush()
	b.SetTile(ts, ts.TileByID(2))

	v := b.Paint(image.Pt(32, 48))
	assert.Equal(t, image.Rect(16, 0, 32, 16), v.Source())
	assert.Equal(t, image.Rect(32, 48, 48, 64), v.Bounds())

	b.SetSprite(ts, ts.EntityByID(2))
	v = b.Paint(image.Pt(0, 0))
	assert.Equal(t, image.Rect(0, 0, 16, 20), v.Bounds())
}

func TestParseBrushMode(t *testing.T) {
	cases := []struct {
		in   string
		want BrushMode
	}{
		{"pointer", ModeNone},
		{"None", ModeNone},
		{"pencil", ModePencil},
		{" FILL ", ModeFill},
		{"eraser", ModeEraser},
		{"erase", ModeEraser},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseBrushMode(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	_, err := ParseBrushMode("spray")
	assert.Error(t, err)
}

func TestBrushModeContinuous(t *testing.T) {
	assert.True(t, ModePencil.Continuous())
	assert.True(t, ModeEraser.Continuous())
	assert.False(t, ModeFill.Continuous())
	assert.False(t, ModeNone.Continuous())
	assert.Equal(t, "Fill", ModeFill.String())
}
