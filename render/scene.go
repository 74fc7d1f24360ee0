package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixel2d/editor"
	"github.com/milk9111/pixel2d/tileset"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = colornames.Dimgray
	mapColor        = colornames.White
	gridColor       = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	boxColor        = color.NRGBA{0xff, 0x00, 0x00, 0x59}
	cursorColor     = color.NRGBA{0x00, 0x77, 0xff, 0x80}
	trackColor      = color.RGBA{0xef, 0xef, 0xef, 0xff}
	thumbColor      = color.RGBA{0x77, 0x77, 0x77, 0xff}
	thumbDragColor  = color.RGBA{0x55, 0x55, 0x55, 0xff}
)

// SceneRenderer draws editor scenes with images from a Registry.
type SceneRenderer struct {
	registry *Registry
	pixel    *ebiten.Image
	log      *logrus.Entry
	// failed remembers images that could not be loaded so each is logged once.
	failed map[string]bool
}

func NewSceneRenderer(registry *Registry, log *logrus.Entry) *SceneRenderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SceneRenderer{
		registry: registry,
		pixel:    pixel,
		log:      log,
		failed:   map[string]bool{},
	}
}

// Forget clears the load-failure memory, e.g. after the catalog is reloaded.
func (r *SceneRenderer) Forget() {
	r.failed = map[string]bool{}
}

// Draw renders sc onto screen: map, tiles, sprites, overlays, then scroll bars.
func (r *SceneRenderer) Draw(screen *ebiten.Image, sc editor.Scene) {
	screen.Fill(backgroundColor)
	if sc.Cols == 0 || sc.Rows == 0 {
		return
	}

	r.fill(screen, toScreen(sc, image.Rect(0, 0, sc.Cols*sc.TileSize, sc.Rows*sc.TileSize)), mapColor)

	view := contentView(sc)
	for _, v := range sc.Tiles {
		if v.Bounds().Overlaps(view) {
			r.drawVisual(screen, sc, v, 1)
		}
	}
	for _, v := range sc.Sprites {
		if v.Bounds().Overlaps(view) {
			r.drawVisual(screen, sc, v, 1)
		}
	}

	if sc.BoundingBoxes {
		for _, v := range sc.Sprites {
			if box, ok := boxRect(v); ok && box.Overlaps(view) {
				r.fill(screen, toScreen(sc, box), boxColor)
			}
		}
	}
	if sc.GridLines {
		for _, line := range gridLines(sc) {
			r.fill(screen, line, gridColor)
		}
	}

	if sc.CursorShown {
		cell := image.Rectangle{Min: sc.Cursor, Max: sc.Cursor.Add(image.Pt(1, 1))}
		r.fill(screen, toScreen(sc, cell.Mul(sc.TileSize)), cursorColor)
		if sc.Preview != nil {
			r.drawVisual(screen, sc, *sc.Preview, 0.5)
		}
	}

	r.drawScrollBars(screen, sc)
}

func (r *SceneRenderer) drawVisual(screen *ebiten.Image, sc editor.Scene, v editor.Visual, alpha float32) {
	img := r.region(v.Tileset, v.Source())
	if img == nil {
		return
	}
	z := float64(sc.Zoom)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(v.Pos.X), float64(v.Pos.Y))
	op.GeoM.Scale(z, z)
	op.GeoM.Translate(sc.Offset.X, sc.Offset.Y)
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	screen.DrawImage(img, op)
}

func (r *SceneRenderer) region(ts *tileset.Tileset, src image.Rectangle) *ebiten.Image {
	if ts == nil || r.failed[ts.Image] {
		return nil
	}
	img, err := r.registry.Region(ts, src)
	if err != nil {
		r.failed[ts.Image] = true
		r.log.WithError(err).WithField("tileset", ts.Name).Warn("tileset image unavailable")
		return nil
	}
	return img
}

func (r *SceneRenderer) drawScrollBars(screen *ebiten.Image, sc editor.Scene) {
	thumb := thumbColor
	if sc.ThumbDragging {
		thumb = thumbDragColor
	}
	r.fill(screen, bbRect(sc.VerticalTrack), trackColor)
	r.fill(screen, bbRect(sc.HorizontalTrack), trackColor)
	r.fill(screen, bbRect(sc.VerticalThumb), thumb)
	r.fill(screen, bbRect(sc.HorizontalThumb), thumb)
	r.fill(screen, bbRect(sc.Corner), trackColor)
}

func (r *SceneRenderer) fill(dst *ebiten.Image, rect screenRect, clr color.Color) {
	if rect.empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.W, rect.H)
	op.GeoM.Translate(rect.X, rect.Y)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(r.pixel, op)
}
