package editor

import (
	"image"
	"math"

	"github.com/jakecoffman/cp"
)

// Viewport maps screen pixels to grid cells for a zoomable, scrollable map.
// The scroll offset is stored the way the content is translated on screen,
// so it is zero or negative on each axis.
type Viewport struct {
	tileSize int
	zoom     int
	cols     int
	rows     int
	screenW  int
	screenH  int
	offset   cp.Vector
	scroll   *ScrollArea
}

// NewViewport creates a viewport over a cols x rows grid.
func NewViewport(cols, rows, tileSize, zoom, screenW, screenH, scrollSize int) *Viewport {
	if zoom < 1 {
		zoom = 1
	}
	v := &Viewport{
		tileSize: tileSize,
		zoom:     zoom,
		cols:     cols,
		rows:     rows,
		screenW:  screenW,
		screenH:  screenH,
		scroll:   NewScrollArea(float64(scrollSize)),
	}
	v.relayout()
	return v
}

func (v *Viewport) Zoom() int {
	return v.zoom
}

func (v *Viewport) TileSize() int {
	return v.tileSize
}

// Scale is the on-screen size of one cell.
func (v *Viewport) Scale() int {
	return v.tileSize * v.zoom
}

// ContentSize returns the zoomed map size in pixels.
func (v *Viewport) ContentSize() (float64, float64) {
	s := float64(v.Scale())
	return float64(v.cols) * s, float64(v.rows) * s
}

func (v *Viewport) ScreenSize() (int, int) {
	return v.screenW, v.screenH
}

// Offset returns the current scroll translation.
func (v *Viewport) Offset() cp.Vector {
	return v.offset
}

func (v *Viewport) ScrollArea() *ScrollArea {
	return v.scroll
}

// ScreenToGrid returns the cell under a screen pixel. The result may lie outside the map.
func (v *Viewport) ScreenToGrid(px, py float64) image.Point {
	s := float64(v.Scale())
	return image.Pt(
		int(math.Floor((math.Abs(v.offset.X)+px)/s)),
		int(math.Floor((math.Abs(v.offset.Y)+py)/s)),
	)
}

// ScreenToContent converts a screen pixel into unscaled content pixels.
func (v *Viewport) ScreenToContent(px, py float64) cp.Vector {
	z := float64(v.zoom)
	return cp.Vector{X: (math.Abs(v.offset.X) + px) / z, Y: (math.Abs(v.offset.Y) + py) / z}
}

// ContentToScreen converts unscaled content pixels into a screen position.
func (v *Viewport) ContentToScreen(p image.Point) cp.Vector {
	z := float64(v.zoom)
	return cp.Vector{X: float64(p.X) * z, Y: float64(p.Y) * z}.Add(v.offset)
}

// ViewableArea returns the cells fully visible on screen, clamped to the map.
func (v *Viewport) ViewableArea() image.Rectangle {
	s := float64(v.Scale())
	x := int(math.Floor(math.Abs(v.offset.X) / s))
	y := int(math.Floor(math.Abs(v.offset.Y) / s))

	cw, ch := v.ContentSize()
	w := int(math.Floor(math.Min(cw, float64(v.screenW)) / s))
	h := int(math.Floor(math.Min(ch, float64(v.screenH)) / s))

	return image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, v.cols, v.rows))
}

// ZoomBy changes zoom by delta steps. Results below 1x are rejected.
func (v *Viewport) ZoomBy(delta int) bool {
	if delta == 0 || v.zoom+delta < 1 {
		return false
	}
	v.zoom += delta
	v.relayout()
	return true
}

// Resize sets the renderer size in pixels.
func (v *Viewport) Resize(w, h int) {
	v.screenW = w
	v.screenH = h
	v.relayout()
}

// ScrollTo positions a scroll bar at pct and scrolls the content to match.
func (v *Viewport) ScrollTo(o Orientation, pct float64) {
	v.applyScroll(ScrollEvent{Pct: v.scroll.Bar(o).SetPercent(pct), Orientation: o})
}

func (v *Viewport) applyScroll(ev ScrollEvent) {
	cw, ch := v.ContentSize()
	if ev.Orientation == Vertical {
		v.offset.Y = -(ch * ev.Pct)
	} else {
		v.offset.X = -(cw * ev.Pct)
	}
}

// relayout reshapes the scroll bars and re-derives the offset from the
// clamped thumb positions.
func (v *Viewport) relayout() {
	cw, ch := v.ContentSize()
	v.scroll.Update(float64(v.screenW), float64(v.screenH), cw, ch)
	v.applyScroll(ScrollEvent{Pct: v.scroll.Vertical().Percent(), Orientation: Vertical})
	v.applyScroll(ScrollEvent{Pct: v.scroll.Horizontal().Percent(), Orientation: Horizontal})
}

// BeginScrollDrag grabs a thumb under the screen point.
func (v *Viewport) BeginScrollDrag(px, py float64) bool {
	return v.scroll.BeginDrag(cp.Vector{X: px, Y: py})
}

// ScrollDrag continues a thumb drag and scrolls the content.
func (v *Viewport) ScrollDrag(px, py float64) bool {
	ev, ok := v.scroll.Drag(cp.Vector{X: px, Y: py})
	if ok {
		v.applyScroll(ev)
	}
	return ok
}

func (v *Viewport) EndScrollDrag() {
	v.scroll.EndDrag()
}
