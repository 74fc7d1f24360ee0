package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is the offscreen image the map is rendered into, placed at Rect in
// window coordinates.
type Canvas struct {
	rect image.Rectangle
	img  *ebiten.Image
}

// canvasRect returns the laid-out canvas widget rectangle, or the area left
// by the fixed panels before the first layout pass.
func canvasRect(widgetRect image.Rectangle, outsideWidth, outsideHeight int) image.Rectangle {
	if !widgetRect.Empty() {
		return widgetRect
	}
	if outsideWidth <= leftPanelWidth || outsideHeight-statusBarHeight <= toolbarHeight {
		return image.Rectangle{}
	}
	return image.Rect(leftPanelWidth, toolbarHeight, outsideWidth, outsideHeight-statusBarHeight)
}

func (c *Canvas) SetRect(r image.Rectangle) {
	c.rect = r
}

func (c *Canvas) Rect() image.Rectangle {
	return c.rect
}

// Local converts window coordinates to canvas coordinates and reports
// whether the point lies on the canvas.
func (c *Canvas) Local(x, y int) (float64, float64, bool) {
	p := image.Pt(x, y)
	local := p.Sub(c.rect.Min)
	return float64(local.X), float64(local.Y), p.In(c.rect)
}

// Target returns the offscreen image, reallocating it when the canvas size changed.
func (c *Canvas) Target() *ebiten.Image {
	if c.rect.Empty() {
		return nil
	}
	if c.img != nil && c.img.Bounds().Size() == c.rect.Size() {
		return c.img
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(c.rect.Dx(), c.rect.Dy())
	return c.img
}

// Present draws the offscreen image onto screen at the canvas position.
func (c *Canvas) Present(screen *ebiten.Image) {
	if c.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(c.rect.Min.X), float64(c.rect.Min.Y))
	screen.DrawImage(c.img, op)
}
