package editor

import (
	"image"

	"github.com/jakecoffman/cp"
)

// Scene is a read-only snapshot of everything a renderer needs for one frame.
type Scene struct {
	Cols     int
	Rows     int
	TileSize int
	Zoom     int
	Offset   cp.Vector
	ScreenW  int
	ScreenH  int
	// Visible is the rectangle of cells on screen.
	Visible image.Rectangle

	Tiles   []Visual
	Sprites []Visual

	GridLines     bool
	BoundingBoxes bool

	// Cursor is the 0-based cell under the pointer; CursorShown is false
	// when the pointer is off the canvas.
	Cursor      image.Point
	CursorShown bool
	// Preview is the brush drawn at the cursor, nil for the pointer tool or
	// an invalid brush.
	Preview *Visual

	VerticalTrack   cp.BB
	VerticalThumb   cp.BB
	HorizontalTrack cp.BB
	HorizontalThumb cp.BB
	Corner          cp.BB
	ThumbDragging   bool
}

// Scene snapshots the current state. It never mutates the engine.
func (e *Engine) Scene() Scene {
	if e.grid == nil {
		return Scene{ScreenW: e.screenW, ScreenH: e.screenH}
	}
	vp := e.viewport
	sw, sh := vp.ScreenSize()
	sc := Scene{
		Cols:          e.grid.Width(),
		Rows:          e.grid.Height(),
		TileSize:      e.opts.TileSize,
		Zoom:          vp.Zoom(),
		Offset:        vp.Offset(),
		ScreenW:       sw,
		ScreenH:       sh,
		Visible:       vp.ViewableArea(),
		Tiles:         make([]Visual, 0, e.tileLayer.Len()),
		Sprites:       make([]Visual, 0, e.spriteLayer.Len()),
		GridLines:     e.gridLines,
		BoundingBoxes: e.boundingBoxes,
		Cursor:        e.hover,
		CursorShown:   e.hovering && e.grid.InBounds(e.hover),
	}
	e.tileLayer.Each(func(_ Handle, v Visual) {
		sc.Tiles = append(sc.Tiles, v)
	})
	e.spriteLayer.Each(func(_ Handle, v Visual) {
		sc.Sprites = append(sc.Sprites, v)
	})

	if e.brush.IsValid() && e.brush.Mode() != ModeNone {
		preview := e.brush.Paint(e.hover.Mul(e.opts.TileSize))
		sc.Preview = &preview
	}

	sa := vp.ScrollArea()
	sc.VerticalTrack = sa.Vertical().Track()
	sc.VerticalThumb = sa.Vertical().Thumb()
	sc.HorizontalTrack = sa.Horizontal().Track()
	sc.HorizontalThumb = sa.Horizontal().Thumb()
	sc.Corner = sa.Corner()
	sc.ThumbDragging = sa.Dragging()
	return sc
}
