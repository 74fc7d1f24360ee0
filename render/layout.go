package render

import (
	"image"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pixel2d/editor"
)

// screenRect is an axis-aligned rectangle in screen pixels.
type screenRect struct {
	X, Y, W, H float64
}

func (r screenRect) empty() bool {
	return r.W <= 0 || r.H <= 0
}

// contentView returns the content-pixel rectangle visible on screen,
// rounded outwards.
func contentView(sc editor.Scene) image.Rectangle {
	if sc.Zoom <= 0 {
		return image.Rectangle{}
	}
	z := float64(sc.Zoom)
	x := int(math.Floor(-sc.Offset.X / z))
	y := int(math.Floor(-sc.Offset.Y / z))
	w := (sc.ScreenW + sc.Zoom - 1) / sc.Zoom
	h := (sc.ScreenH + sc.Zoom - 1) / sc.Zoom
	return image.Rect(x, y, x+w+1, y+h+1)
}

// toScreen maps a content-pixel rectangle onto the screen.
func toScreen(sc editor.Scene, r image.Rectangle) screenRect {
	z := float64(sc.Zoom)
	return screenRect{
		X: float64(r.Min.X)*z + sc.Offset.X,
		Y: float64(r.Min.Y)*z + sc.Offset.Y,
		W: float64(r.Dx()) * z,
		H: float64(r.Dy()) * z,
	}
}

func bbRect(bb cp.BB) screenRect {
	return screenRect{X: bb.L, Y: bb.B, W: bb.R - bb.L, H: bb.T - bb.B}
}

// boxRect returns the collision box of a sprite visual in content pixels.
func boxRect(v editor.Visual) (image.Rectangle, bool) {
	if v.Entity == nil || v.Entity.Box == nil {
		return image.Rectangle{}, false
	}
	b := v.Entity.Box
	origin := v.Pos.Add(image.Pt(b.X, b.Y))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(b.W, b.H))}, true
}

// gridLines returns one-pixel lines on every cell edge around the visible
// cells, clipped to the map and the screen.
func gridLines(sc editor.Scene) []screenRect {
	if sc.Zoom <= 0 || sc.TileSize <= 0 || sc.Visible.Empty() {
		return nil
	}
	scale := float64(sc.TileSize * sc.Zoom)
	vis := sc.Visible
	maxX := min(vis.Max.X+1, sc.Cols)
	maxY := min(vis.Max.Y+1, sc.Rows)

	top := math.Max(0, sc.Offset.Y)
	bottom := math.Min(float64(sc.ScreenH), sc.Offset.Y+float64(sc.Rows)*scale)
	left := math.Max(0, sc.Offset.X)
	right := math.Min(float64(sc.ScreenW), sc.Offset.X+float64(sc.Cols)*scale)

	lines := make([]screenRect, 0, (maxX-vis.Min.X+1)+(maxY-vis.Min.Y+1))
	for c := vis.Min.X; c <= maxX; c++ {
		x := sc.Offset.X + float64(c)*scale
		if c == sc.Cols {
			x--
		}
		lines = append(lines, screenRect{X: x, Y: top, W: 1, H: bottom - top})
	}
	for r := vis.Min.Y; r <= maxY; r++ {
		y := sc.Offset.Y + float64(r)*scale
		if r == sc.Rows {
			y--
		}
		lines = append(lines, screenRect{X: left, Y: y, W: right - left, H: 1})
	}
	return lines
}
