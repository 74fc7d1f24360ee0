package main

import (
	"fmt"
	"image"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pixel2d/editor"
	"github.com/milk9111/pixel2d/render"
	"github.com/milk9111/pixel2d/tileset"
	"github.com/sirupsen/logrus"
)

// EditorGame adapts the editor engine to ebiten's game loop.
type EditorGame struct {
	log      *logrus.Entry
	engine   *editor.Engine
	source   catalogSource
	watcher  *tileset.Watcher
	registry *render.Registry
	renderer *render.SceneRenderer
	ui       *EditorUI
	canvas   Canvas
	subs     []*editor.Subscription

	lastX, lastY int
	hovering     bool
}

func NewEditorGame(engine *editor.Engine, source catalogSource, registry *render.Registry, log *logrus.Entry) *EditorGame {
	g := &EditorGame{
		log:      log,
		engine:   engine,
		source:   source,
		registry: registry,
		renderer: render.NewSceneRenderer(registry, log),
	}
	g.ui = BuildEditorUI(paletteEntries(engine.Catalog()), g.callbacks(), engine.Mode())
	g.ui.ToolBar.SetGridShown(engine.GridLinesShown())
	g.ui.ToolBar.SetBoxesShown(engine.BoundingBoxesShown())
	g.ui.ToolBar.SetToolEnabled(editor.ModeFill, engine.FillAvailable())
	g.subscribe()
	return g
}

func (g *EditorGame) callbacks() UICallbacks {
	return UICallbacks{
		OnModeSelected: func(mode editor.BrushMode) {
			g.engine.SetMode(mode)
		},
		OnPaletteSelected: g.selectPalette,
		OnToggleGrid: func() {
			g.engine.SetGridLinesShown(!g.engine.GridLinesShown())
			g.ui.ToolBar.SetGridShown(g.engine.GridLinesShown())
		},
		OnToggleBoxes: func() {
			g.engine.SetBoundingBoxesShown(!g.engine.BoundingBoxesShown())
			g.ui.ToolBar.SetBoxesShown(g.engine.BoundingBoxesShown())
		},
		OnNewMapRequested: func() {
			w, h := 0, 0
			if grid := g.engine.Grid(); grid != nil {
				w, h = grid.Width(), grid.Height()
			}
			g.ui.NewMap.Open(w, h)
		},
		OnNewMap: func(width, height int) error {
			if err := g.engine.Initialize(width, height); err != nil {
				return err
			}
			g.ui.Status.SetMessage("New %dx%d map", width, height)
			return nil
		},
		OnDeleteTopSprite: func(cell image.Point) {
			s := g.engine.RemoveTopSprite(cell)
			if s == nil {
				g.ui.Status.SetMessage("No sprite at %d, %d", cell.X+1, cell.Y+1)
				return
			}
			g.ui.Status.SetMessage("Removed %s", s.Entity.Name)
		},
	}
}

func (g *EditorGame) subscribe() {
	ev := g.engine.Events()
	g.subs = append(g.subs,
		ev.CursorChanged.Subscribe(g.ui.Status.SetCursor),
		ev.ModeChanged.Subscribe(g.ui.ToolBar.SetTool),
		ev.ModeAvailability.Subscribe(func(a editor.ModeAvailability) {
			g.ui.ToolBar.SetToolEnabled(a.Mode, a.Enabled)
		}),
		ev.PlacementRejected.Subscribe(func(n editor.Notice) {
			g.ui.Status.SetMessage("%s (%d, %d)", n.Message, n.Cell.X+1, n.Cell.Y+1)
		}),
	)
}

func (g *EditorGame) selectPalette(entry PaletteEntry) {
	var err error
	if entry.Sprite {
		err = g.engine.SelectSprite(entry.Tileset, entry.ID)
	} else {
		err = g.engine.SelectTile(entry.Tileset, entry.ID)
	}
	if err != nil {
		g.log.WithError(err).Warn("palette selection failed")
		g.ui.Status.SetMessage("%v", err)
		return
	}
	g.ui.Status.SetMessage("Selected %s", entry.Label())
}

func (g *EditorGame) Update() error {
	g.ui.UI.Update()
	g.pollCatalog()

	if g.ui.ModalOpen() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.ui.ContextMenu.Close()
			g.ui.NewMap.Close()
		}
	} else {
		g.handleHotkeys()
		g.handlePointer()
	}

	g.engine.Tick()
	return nil
}

func (g *EditorGame) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyCursor()
	case ctrl:
		// no other chords
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.engine.SetMode(editor.ModeNone)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.engine.SetMode(editor.ModePencil)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if g.engine.FillAvailable() {
			g.engine.SetMode(editor.ModeFill)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.engine.SetMode(editor.ModeEraser)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.callbacks().OnToggleGrid()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.callbacks().OnToggleBoxes()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.callbacks().OnNewMapRequested()
	}
}

func (g *EditorGame) handlePointer() {
	mx, my := ebiten.CursorPosition()
	px, py, inside := g.canvas.Local(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside {
		g.engine.PointerDown(px, py, editor.ButtonLeft)
	}
	if mx != g.lastX || my != g.lastY {
		switch {
		case inside || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			g.engine.PointerMove(px, py)
		case g.hovering:
			g.engine.PointerLeave()
		}
		g.lastX, g.lastY = mx, my
		g.hovering = inside
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.engine.PointerUp(px, py, editor.ButtonLeft)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && inside && g.engine.Initialized() {
		cell := g.engine.Viewport().ScreenToGrid(px, py)
		g.ui.ContextMenu.Open(cell, g.engine.SpritesUnder(px, py))
	}

	if _, wy := ebiten.Wheel(); wy != 0 && inside {
		g.engine.Wheel(wy)
	}
}

// copyCursor puts the 1-based cursor cell on the system clipboard.
func (g *EditorGame) copyCursor() {
	p := g.engine.Cursor()
	s := fmt.Sprintf("%d,%d", p.X, p.Y)
	if err := clipboard.WriteAll(s); err != nil {
		g.log.WithError(err).Warn("clipboard unavailable")
		g.ui.Status.SetMessage("Clipboard unavailable")
		return
	}
	g.ui.Status.SetMessage("Copied %s", s)
}

// pollCatalog drains watcher notifications and reloads the catalog once
// per frame when anything changed.
func (g *EditorGame) pollCatalog() {
	if g.watcher == nil {
		return
	}
	changed, open := drainCatalogChanges(g.watcher.Changes, g.watcher.Errors, g.log)
	if !open {
		g.watcher = nil
	}
	if changed {
		g.reloadCatalog()
	}
}

// drainCatalogChanges reads whatever is buffered without blocking. open is
// false once the change stream has been closed.
func drainCatalogChanges(changes <-chan tileset.Change, errs <-chan error, log *logrus.Entry) (changed, open bool) {
	for {
		select {
		case c, ok := <-changes:
			if !ok {
				return changed, false
			}
			log.WithFields(logrus.Fields{"file": c.Path, "removed": c.Removed}).Debug("catalog file changed")
			changed = true
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.WithError(err).Warn("catalog watcher")
		default:
			return changed, true
		}
	}
}

func (g *EditorGame) reloadCatalog() {
	cat, err := g.source.Load()
	if err != nil {
		g.log.WithError(err).Warn("catalog reload failed")
		g.ui.Status.SetMessage("Catalog reload failed: %v", err)
		return
	}
	g.engine.SetCatalog(cat)
	g.registry.Reset(g.source.FS())
	g.renderer.Forget()
	g.ui.Palette.SetEntries(paletteEntries(cat))
	g.log.WithField("tilesets", cat.Len()).Info("catalog reloaded")
	g.ui.Status.SetMessage("Catalog reloaded (%d tilesets)", cat.Len())
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	if target := g.canvas.Target(); target != nil {
		g.renderer.Draw(target, g.engine.Scene())
		g.canvas.Present(screen)
	}
	g.ui.UI.Draw(screen)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.canvas.SetRect(canvasRect(g.ui.Canvas.GetWidget().Rect, outsideWidth, outsideHeight))
	r := g.canvas.Rect()
	if !r.Empty() {
		g.engine.Resize(r.Dx(), r.Dy())
	}
	return outsideWidth, outsideHeight
}

// Close releases subscriptions, the watcher and GPU resources.
func (g *EditorGame) Close() {
	for _, s := range g.subs {
		s.Unsubscribe()
	}
	g.subs = nil
	if g.watcher != nil {
		g.watcher.Close()
	}
	g.engine.Close()
	g.registry.Close()
}
