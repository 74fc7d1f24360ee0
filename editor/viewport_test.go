package editor

import (
	"image"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenToGrid(t *testing.T) {
	v := NewViewport(40, 40, 16, 2, 640, 480, 15)
	assert.Equal(t, image.Pt(1, 0), v.ScreenToGrid(40, 0))
	assert.Equal(t, image.Pt(0, 0), v.ScreenToGrid(31.9, 31.9))
	assert.Equal(t, image.Pt(-1, 0), v.ScreenToGrid(-1, 0))

	// 40 cells * 32px = 1280px of content; 2.5% of that is 32px
	v.ScrollTo(Horizontal, 0.025)
	require.InDelta(t, -32, v.Offset().X, 1e-9)
	assert.Equal(t, image.Pt(2, 0), v.ScreenToGrid(40, 0))
}

func TestScreenToContent(t *testing.T) {
	v := NewViewport(40, 40, 16, 2, 640, 480, 15)
	v.ScrollTo(Vertical, 0.025)

	p := v.ScreenToContent(10, 10)
	assert.InDelta(t, 5, p.X, 1e-9)
	assert.InDelta(t, 21, p.Y, 1e-9)

	s := v.ContentToScreen(image.Pt(16, 16))
	assert.InDelta(t, 32, s.X, 1e-9)
	assert.InDelta(t, 0, s.Y, 1e-9)
}

func TestViewableArea(t *testing.T) {
	cases := []struct {
		name       string
		cols, rows int
		w, h       int
		scrollX    float64
		want       image.Rectangle
	}{
		{"map_smaller_than_screen", 4, 4, 640, 480, 0, image.Rect(0, 0, 4, 4)},
		{"partial_cells_excluded", 40, 40, 640, 470, 0, image.Rect(0, 0, 20, 14)},
		{"scrolled", 40, 40, 640, 480, 0.025, image.Rect(1, 0, 21, 15)},
		{"clamped_at_end", 40, 40, 640, 480, 1, image.Rect(20, 0, 40, 15)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := NewViewport(c.cols, c.rows, 16, 2, c.w, c.h, 15)
			v.ScrollTo(Horizontal, c.scrollX)
			assert.Equal(t, c.want, v.ViewableArea())
		})
	}
}

func TestZoomBy(t *testing.T) {
	v := NewViewport(10, 10, 16, 2, 640, 480, 15)

	assert.True(t, v.ZoomBy(-1))
	assert.Equal(t, 1, v.Zoom())
	assert.False(t, v.ZoomBy(-1), "zoom never drops below 1x")
	assert.Equal(t, 1, v.Zoom())

	assert.True(t, v.ZoomBy(1))
	assert.True(t, v.ZoomBy(1))
	assert.Equal(t, 3, v.Zoom())

	w, h := v.ContentSize()
	assert.Equal(t, 480.0, w)
	assert.Equal(t, 480.0, h)
	assert.False(t, v.ZoomBy(0))
}

func TestZoomKeepsScrollPercentage(t *testing.T) {
	v := NewViewport(40, 40, 16, 2, 640, 480, 15)
	v.ScrollTo(Horizontal, 0.25)
	require.InDelta(t, -320, v.Offset().X, 1e-9)

	v.ZoomBy(1)
	assert.InDelta(t, 0.25, v.ScrollArea().Horizontal().Percent(), 1e-9)
	assert.InDelta(t, -480, v.Offset().X, 1e-9)

	// at 1x the 640px map barely overflows the 625px track, so the thumb
	// clamps and the content end meets the track end
	v.ZoomBy(-2)
	assert.InDelta(t, -15, v.Offset().X, 1e-9)
}

func TestNewViewportClampsZoom(t *testing.T) {
	v := NewViewport(4, 4, 16, 0, 100, 100, 15)
	assert.Equal(t, 1, v.Zoom())
}

func TestThumbLength(t *testing.T) {
	assert.Equal(t, 200.0, thumbLength(200, 150))
	assert.Equal(t, 200.0, thumbLength(200, 200))
	assert.Equal(t, 50.0, thumbLength(200, 800))
}

func TestScrollBarReshape(t *testing.T) {
	v := NewScrollBar(Vertical, 15)
	v.Reshape(100, 200, 100, 800)
	assert.Equal(t, cp.BB{L: 85, B: 0, R: 100, T: 200}, v.Track())
	assert.Equal(t, cp.BB{L: 85, B: 0, R: 100, T: 50}, v.Thumb())

	h := NewScrollBar(Horizontal, 15)
	h.Reshape(300, 200, 150, 800)
	assert.Equal(t, cp.BB{L: 0, B: 185, R: 300, T: 200}, h.Track())
	assert.Equal(t, cp.BB{L: 0, B: 185, R: 300, T: 200}, h.Thumb(), "content fits")
}

func TestScrollBarDragClamps(t *testing.T) {
	b := NewScrollBar(Vertical, 15)
	b.Reshape(100, 200, 100, 800)

	require.True(t, b.BeginDrag(cp.Vector{X: 90, Y: 10}))

	_, moved := b.Drag(cp.Vector{X: 90, Y: -50})
	assert.False(t, moved, "already at the top")

	pct, moved := b.Drag(cp.Vector{X: 90, Y: 60})
	require.True(t, moved)
	assert.InDelta(t, 0.25, pct, 1e-9)

	pct, moved = b.Drag(cp.Vector{X: 90, Y: 1000})
	require.True(t, moved)
	assert.InDelta(t, 0.75, pct, 1e-9)
	assert.InDelta(t, 200, b.Thumb().T, 1e-9)

	_, moved = b.Drag(cp.Vector{X: 90, Y: 1200})
	assert.False(t, moved, "already at the bottom")

	b.EndDrag()
	_, moved = b.Drag(cp.Vector{X: 90, Y: 0})
	assert.False(t, moved)
	assert.False(t, b.BeginDrag(cp.Vector{X: 90, Y: 10}), "thumb is no longer there")

	b.Reshape(100, 200, 100, 100)
	assert.Equal(t, 0.0, b.Percent(), "thumb clamps when the content shrinks")
}

func TestScrollAreaLayout(t *testing.T) {
	a := NewScrollArea(15)
	a.Update(640, 480, 1280, 1280)

	assert.Equal(t, cp.BB{L: 625, B: 0, R: 640, T: 465}, a.Vertical().Track())
	assert.Equal(t, cp.BB{L: 0, B: 465, R: 625, T: 480}, a.Horizontal().Track())
	assert.Equal(t, cp.BB{L: 625, B: 465, R: 640, T: 480}, a.Corner())

	assert.True(t, a.Contains(cp.Vector{X: 630, Y: 470}))
	assert.True(t, a.Contains(cp.Vector{X: 10, Y: 470}))
	assert.False(t, a.Contains(cp.Vector{X: 10, Y: 10}))
}

func TestViewportScrollDrag(t *testing.T) {
	v := NewViewport(40, 40, 16, 2, 640, 480, 15)
	require.True(t, v.BeginScrollDrag(5, 470))

	assert.True(t, v.ScrollDrag(20.625, 470))
	assert.InDelta(t, 0.025, v.ScrollArea().Horizontal().Percent(), 1e-9)
	assert.InDelta(t, -32, v.Offset().X, 1e-6)
	assert.Equal(t, 0.0, v.Offset().Y)

	v.EndScrollDrag()
	assert.False(t, v.ScrollDrag(200, 470))
}

func TestViewportResize(t *testing.T) {
	v := NewViewport(40, 40, 16, 2, 640, 480, 15)
	v.Resize(1300, 1300)

	w, h := v.ScreenSize()
	assert.Equal(t, 1300, w)
	assert.Equal(t, 1300, h)
	assert.Equal(t, image.Rect(0, 0, 40, 40), v.ViewableArea())
	assert.Equal(t, cp.BB{L: 1285, B: 0, R: 1300, T: 1285}, v.ScrollArea().Vertical().Track())
}
