package editor

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Orientation is the axis a scroll bar moves along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ScrollBar is a track with a draggable thumb sized by the ratio of viewport
// to content. All geometry is in screen pixels.
type ScrollBar struct {
	orientation Orientation
	size        float64
	track       cp.BB
	max         float64
	thumbPos    float64
	thumbLen    float64
	grab        float64
	dragging    bool
}

func NewScrollBar(o Orientation, size float64) *ScrollBar {
	return &ScrollBar{orientation: o, size: size}
}

// thumbLength fills the track when the content fits, else shrinks proportionally.
func thumbLength(viewport, content float64) float64 {
	if content <= viewport {
		return viewport
	}
	return (viewport / content) * viewport
}

// Reshape lays the bar along the right (vertical) or bottom (horizontal)
// edge of a pW x pH parent that shows vW x vH of content.
func (b *ScrollBar) Reshape(pW, pH, vW, vH float64) {
	pW = math.Max(pW, 0)
	pH = math.Max(pH, 0)
	if b.orientation == Vertical {
		b.track = cp.BB{L: pW - b.size, B: 0, R: pW, T: pH}
		b.thumbLen = thumbLength(pH, vH)
		b.max = pH
	} else {
		b.track = cp.BB{L: 0, B: pH - b.size, R: pW, T: pH}
		b.thumbLen = thumbLength(pW, vW)
		b.max = pW
	}
	b.thumbPos = clampf(b.thumbPos, 0, math.Max(0, b.max-b.thumbLen))
}

func (b *ScrollBar) Orientation() Orientation {
	return b.orientation
}

// Track returns the full track rectangle.
func (b *ScrollBar) Track() cp.BB {
	return b.track
}

// Thumb returns the thumb rectangle.
func (b *ScrollBar) Thumb() cp.BB {
	if b.orientation == Vertical {
		top := b.track.B + b.thumbPos
		return cp.BB{L: b.track.L, B: top, R: b.track.R, T: top + b.thumbLen}
	}
	left := b.track.L + b.thumbPos
	return cp.BB{L: left, B: b.track.B, R: left + b.thumbLen, T: b.track.T}
}

// Percent is the thumb offset as a fraction of the track length.
func (b *ScrollBar) Percent() float64 {
	if b.max <= 0 {
		return 0
	}
	return b.thumbPos / b.max
}

// SetPercent moves the thumb to pct of the track, clamped so it stays inside.
// It returns the resulting percentage.
func (b *ScrollBar) SetPercent(pct float64) float64 {
	b.thumbPos = clampf(pct*b.max, 0, math.Max(0, b.max-b.thumbLen))
	return b.Percent()
}

func (b *ScrollBar) Dragging() bool {
	return b.dragging
}

func (b *ScrollBar) axis(p cp.Vector) float64 {
	if b.orientation == Vertical {
		return p.Y
	}
	return p.X
}

// BeginDrag grabs the thumb if p is on it.
func (b *ScrollBar) BeginDrag(p cp.Vector) bool {
	if !containsPoint(b.Thumb(), p) {
		return false
	}
	b.dragging = true
	b.grab = b.axis(p)
	return true
}

// Drag moves a grabbed thumb toward p. The move is clamped to the track and
// a percentage is produced only when the thumb actually moved.
func (b *ScrollBar) Drag(p cp.Vector) (float64, bool) {
	if !b.dragging {
		return 0, false
	}
	pos := b.axis(p)
	delta := pos - b.grab
	if delta < 0 && b.thumbPos+delta < 0 {
		delta = -b.thumbPos
	} else if delta > 0 && b.thumbPos+b.thumbLen+delta > b.max {
		delta = b.max - b.thumbPos - b.thumbLen
	}
	if delta == 0 {
		return 0, false
	}
	b.thumbPos += delta
	b.grab = pos
	return b.Percent(), true
}

func (b *ScrollBar) EndDrag() {
	b.dragging = false
	b.grab = 0
}

// ScrollEvent is emitted when a thumb drag scrolls the view.
type ScrollEvent struct {
	Pct         float64
	Orientation Orientation
}

// ScrollArea pairs a vertical and a horizontal scroll bar with the corner square between them.
type ScrollArea struct {
	size       float64
	vertical   *ScrollBar
	horizontal *ScrollBar
	corner     cp.BB
}

func NewScrollArea(size float64) *ScrollArea {
	return &ScrollArea{
		size:       size,
		vertical:   NewScrollBar(Vertical, size),
		horizontal: NewScrollBar(Horizontal, size),
	}
}

// Update relayouts both bars for a new screen or content size.
func (a *ScrollArea) Update(screenW, screenH, contentW, contentH float64) {
	a.vertical.Reshape(screenW, screenH-a.size, contentW, contentH)
	a.horizontal.Reshape(screenW-a.size, screenH, contentW, contentH)
	a.corner = cp.BB{L: screenW - a.size, B: screenH - a.size, R: screenW, T: screenH}
}

func (a *ScrollArea) Size() float64 {
	return a.size
}

func (a *ScrollArea) Vertical() *ScrollBar {
	return a.vertical
}

func (a *ScrollArea) Horizontal() *ScrollBar {
	return a.horizontal
}

func (a *ScrollArea) Corner() cp.BB {
	return a.corner
}

// Bar returns the bar for o.
func (a *ScrollArea) Bar(o Orientation) *ScrollBar {
	if o == Vertical {
		return a.vertical
	}
	return a.horizontal
}

// Contains reports whether p is over either track or the corner.
func (a *ScrollArea) Contains(p cp.Vector) bool {
	return containsPoint(a.vertical.Track(), p) ||
		containsPoint(a.horizontal.Track(), p) ||
		containsPoint(a.corner, p)
}

// BeginDrag grabs whichever thumb is under p.
func (a *ScrollArea) BeginDrag(p cp.Vector) bool {
	return a.vertical.BeginDrag(p) || a.horizontal.BeginDrag(p)
}

func (a *ScrollArea) Dragging() bool {
	return a.vertical.Dragging() || a.horizontal.Dragging()
}

// Drag forwards p to the grabbed thumb.
func (a *ScrollArea) Drag(p cp.Vector) (ScrollEvent, bool) {
	for _, bar := range []*ScrollBar{a.vertical, a.horizontal} {
		if !bar.Dragging() {
			continue
		}
		if pct, ok := bar.Drag(p); ok {
			return ScrollEvent{Pct: pct, Orientation: bar.Orientation()}, true
		}
	}
	return ScrollEvent{}, false
}

func (a *ScrollArea) EndDrag() {
	a.vertical.EndDrag()
	a.horizontal.EndDrag()
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
