package editor

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pixel2d/tileset"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSize     = errors.New("editor: map size must be positive")
	ErrNoMap           = errors.New("editor: no map initialized")
	ErrNoBrush         = errors.New("editor: no tile or sprite selected")
	ErrSpriteCollision = errors.New("editor: sprite collides with a placed sprite")
	ErrFillNeedsTile   = errors.New("editor: fill requires a tile brush")
	ErrUnknownTileset  = errors.New("editor: unknown tileset")
	ErrUnknownTile     = errors.New("editor: unknown tile")
	ErrUnknownEntity   = errors.New("editor: unknown entity")
)

// Options configure an Engine. Zero fields take the values of DefaultOptions.
type Options struct {
	TileSize     int
	InitialZoom  int
	ScrollSize   int
	ScreenWidth  int
	ScreenHeight int
	ResizeDelay  time.Duration
	// Now is the clock used for resize debouncing.
	Now    func() time.Time
	Logger *logrus.Entry
}

func DefaultOptions() Options {
	return Options{
		TileSize:     16,
		InitialZoom:  2,
		ScrollSize:   15,
		ScreenWidth:  1280,
		ScreenHeight: 800,
		ResizeDelay:  500 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TileSize <= 0 {
		o.TileSize = d.TileSize
	}
	if o.InitialZoom <= 0 {
		o.InitialZoom = d.InitialZoom
	}
	if o.ScrollSize <= 0 {
		o.ScrollSize = d.ScrollSize
	}
	if o.ScreenWidth <= 0 {
		o.ScreenWidth = d.ScreenWidth
	}
	if o.ScreenHeight <= 0 {
		o.ScreenHeight = d.ScreenHeight
	}
	if o.ResizeDelay <= 0 {
		o.ResizeDelay = d.ResizeDelay
	}
	if o.Logger == nil {
		o.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return o
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

type gestureKind int

const (
	gestureIdle gestureKind = iota
	gestureDrawing
	gestureScrolling
)

// gesture is the pointer state between press and release.
type gesture struct {
	kind     gestureKind
	mode     BrushMode
	lastCell image.Point
	hasLast  bool
}

func (g *gesture) drawn(p image.Point) bool {
	return g.kind == gestureDrawing && g.hasLast && g.lastCell == p
}

func (g *gesture) record(p image.Point) {
	if g.kind != gestureDrawing {
		return
	}
	g.lastCell = p
	g.hasLast = true
}

// Engine is the map editing engine. It is not safe for concurrent use: every
// method must be called from the goroutine that runs the event loop.
type Engine struct {
	opts    Options
	log     *logrus.Entry
	catalog *tileset.Catalog
	events  Events

	brush         *Brush
	fillAvailable bool

	grid        *GridStore
	sprites     *SpriteIndex
	tileLayer   *Layer
	spriteLayer *Layer
	viewport    *Viewport
	cursor      *CursorTracker
	resize      *Debouncer
	gesture     gesture
	hover       image.Point
	hovering    bool

	screenW       int
	screenH       int
	pendingW      int
	pendingH      int
	gridLines     bool
	boundingBoxes bool
}

// NewEngine creates an engine with no map. Call Initialize before drawing.
func NewEngine(catalog *tileset.Catalog, opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		opts:          opts,
		log:           opts.Logger.WithField("component", "editor"),
		catalog:       catalog,
		brush:         NewBrush(),
		fillAvailable: true,
		resize:        NewDebouncer(opts.ResizeDelay, opts.Now),
		screenW:       opts.ScreenWidth,
		screenH:       opts.ScreenHeight,
		gridLines:     true,
	}
	e.cursor = NewCursorTracker(&e.events.CursorChanged)
	return e
}

// Events returns the engine's notification channels.
func (e *Engine) Events() *Events {
	return &e.events
}

// SetCatalog replaces the catalog used by SelectTile and SelectSprite.
// Content already on the map keeps its tileset references.
func (e *Engine) SetCatalog(c *tileset.Catalog) {
	e.catalog = c
}

func (e *Engine) Catalog() *tileset.Catalog {
	return e.catalog
}

// Initialize discards the current map and starts an empty width x height one.
func (e *Engine) Initialize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	zoom := e.opts.InitialZoom
	if e.viewport != nil {
		zoom = e.viewport.Zoom()
	}
	e.tileLayer.Clear()
	e.spriteLayer.Clear()

	e.tileLayer = NewLayer()
	e.spriteLayer = NewLayer()
	e.grid = NewGridStore(width, height, e.opts.TileSize, e.tileLayer)
	e.sprites = NewSpriteIndex(width, height, e.opts.TileSize)
	e.viewport = NewViewport(width, height, e.opts.TileSize, zoom, e.screenW, e.screenH, e.opts.ScrollSize)
	e.gesture = gesture{}

	e.log.WithFields(logrus.Fields{"width": width, "height": height}).Info("map initialized")
	return nil
}

// Initialized reports whether a map exists.
func (e *Engine) Initialized() bool {
	return e.grid != nil
}

func (e *Engine) Brush() *Brush {
	return e.brush
}

func (e *Engine) Grid() *GridStore {
	return e.grid
}

func (e *Engine) Sprites() *SpriteIndex {
	return e.sprites
}

func (e *Engine) TileLayer() *Layer {
	return e.tileLayer
}

func (e *Engine) SpriteLayer() *Layer {
	return e.spriteLayer
}

func (e *Engine) Viewport() *Viewport {
	return e.viewport
}

// Cursor returns the last published 1-based cursor cell.
func (e *Engine) Cursor() image.Point {
	return e.cursor.Position()
}

// FillAvailable reports whether the fill mode may be used with the current brush.
func (e *Engine) FillAvailable() bool {
	return e.fillAvailable
}

// SelectTile selects a tile brush by tileset name and tile id.
func (e *Engine) SelectTile(tilesetName string, id int) error {
	ts := e.catalog.Tileset(tilesetName)
	if ts == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTileset, tilesetName)
	}
	tile := ts.TileByID(id)
	if tile == nil {
		return fmt.Errorf("%w: %s/%d", ErrUnknownTile, tilesetName, id)
	}
	e.SetTileBrush(ts, tile)
	return nil
}

// SelectSprite selects a sprite brush by tileset name and entity id.
func (e *Engine) SelectSprite(tilesetName string, id int) error {
	ts := e.catalog.Tileset(tilesetName)
	if ts == nil {
		return fmt.Errorf("%w: %q", ErrUnknownTileset, tilesetName)
	}
	ent := ts.EntityByID(id)
	if ent == nil {
		return fmt.Errorf("%w: %s/%d", ErrUnknownEntity, tilesetName, id)
	}
	e.SetSpriteBrush(ts, ent)
	return nil
}

// SetTileBrush selects tile and makes fill available again.
func (e *Engine) SetTileBrush(ts *tileset.Tileset, tile *tileset.Tile) {
	e.brush.SetTile(ts, tile)
	if !e.fillAvailable {
		e.fillAvailable = true
		e.events.ModeAvailability.Publish(ModeAvailability{Mode: ModeFill, Enabled: true})
	}
}

// SetSpriteBrush selects sprite and makes fill unavailable. An active fill
// mode falls back to pencil.
func (e *Engine) SetSpriteBrush(ts *tileset.Tileset, sprite *tileset.Entity) {
	e.brush.SetSprite(ts, sprite)
	if e.fillAvailable {
		e.fillAvailable = false
		e.events.ModeAvailability.Publish(ModeAvailability{Mode: ModeFill, Enabled: false})
	}
	if e.brush.Mode() == ModeFill {
		e.SetMode(ModePencil)
	}
}

// SetMode changes the brush mode and publishes the change.
func (e *Engine) SetMode(mode BrushMode) {
	if e.brush.Mode() == mode {
		return
	}
	e.brush.SetMode(mode)
	e.events.ModeChanged.Publish(mode)
}

func (e *Engine) Mode() BrushMode {
	return e.brush.Mode()
}

func (e *Engine) SetGridLinesShown(shown bool) {
	e.gridLines = shown
}

func (e *Engine) GridLinesShown() bool {
	return e.gridLines
}

func (e *Engine) SetBoundingBoxesShown(shown bool) {
	e.boundingBoxes = shown
}

func (e *Engine) BoundingBoxesShown() bool {
	return e.boundingBoxes
}

// PointerDown handles a button press at a screen pixel. Pressing a scroll
// thumb starts a scroll drag; a primary press with a valid brush starts a
// draw gesture.
func (e *Engine) PointerDown(px, py float64, button Button) {
	if e.grid == nil || button != ButtonLeft {
		return
	}
	if e.viewport.BeginScrollDrag(px, py) {
		e.gesture = gesture{kind: gestureScrolling}
		return
	}
	if e.overScrollArea(px, py) {
		return
	}

	cell := e.trackPointer(px, py)
	if !e.brush.IsValid() {
		return
	}
	e.gesture = gesture{kind: gestureDrawing, mode: e.brush.Mode()}
	_ = e.drawAt(cell)
	e.gesture.record(cell)
}

// PointerMove tracks the cursor and continues pencil and eraser gestures.
func (e *Engine) PointerMove(px, py float64) {
	if e.grid == nil {
		return
	}
	if e.gesture.kind == gestureScrolling {
		e.viewport.ScrollDrag(px, py)
		return
	}

	cell := e.trackPointer(px, py)
	if e.gesture.kind != gestureDrawing || !e.gesture.mode.Continuous() {
		return
	}
	if e.gesture.drawn(cell) {
		return
	}
	_ = e.drawAt(cell)
	e.gesture.record(cell)
}

// PointerUp ends the current gesture.
func (e *Engine) PointerUp(px, py float64, button Button) {
	if button != ButtonLeft {
		return
	}
	if e.gesture.kind == gestureScrolling {
		e.viewport.EndScrollDrag()
	}
	e.gesture = gesture{}
}

// PointerLeave hides the cursor preview.
func (e *Engine) PointerLeave() {
	e.hovering = false
}

// Drawing reports whether a draw gesture is in progress.
func (e *Engine) Drawing() bool {
	return e.gesture.kind == gestureDrawing
}

func (e *Engine) overScrollArea(px, py float64) bool {
	return e.viewport.ScrollArea().Contains(cp.Vector{X: px, Y: py})
}

func (e *Engine) trackPointer(px, py float64) image.Point {
	cell := e.viewport.ScreenToGrid(px, py)
	e.hover = cell
	e.hovering = true
	e.cursor.Track(cell)
	return cell
}

// Wheel zooms one step per notch; dy > 0 zooms in.
func (e *Engine) Wheel(dy float64) {
	if e.viewport == nil || dy == 0 {
		return
	}
	delta := 1
	if dy < 0 {
		delta = -1
	}
	if e.viewport.ZoomBy(delta) {
		e.log.WithField("zoom", e.viewport.Zoom()).Debug("zoom changed")
	}
}

// Resize records a new renderer size. The re-layout runs once the size has
// been stable for the resize delay; see Tick.
func (e *Engine) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if e.resize.Pending() {
		if w == e.pendingW && h == e.pendingH {
			return
		}
	} else if w == e.screenW && h == e.screenH {
		return
	}
	e.pendingW, e.pendingH = w, h
	e.resize.Schedule(func() {
		e.screenW, e.screenH = w, h
		if e.viewport != nil {
			e.viewport.Resize(w, h)
		}
		e.log.WithFields(logrus.Fields{"width": w, "height": h}).Debug("viewport resized")
	})
}

// Tick runs deferred work. Call it once per frame.
func (e *Engine) Tick() {
	e.resize.Poll()
}

// DrawAt applies the brush at cell as a single press would.
func (e *Engine) DrawAt(cell image.Point) error {
	if e.grid == nil {
		return ErrNoMap
	}
	if !e.brush.IsValid() {
		return ErrNoBrush
	}
	return e.drawAt(cell)
}

// SpritesUnder returns the sprites whose extent covers a screen pixel.
func (e *Engine) SpritesUnder(px, py float64) []*MapSprite {
	if e.sprites == nil {
		return nil
	}
	return e.sprites.SpritesAt(e.viewport.ScreenToContent(px, py))
}

// RemoveTopSprite removes the most recently placed sprite at cell and releases its visual.
func (e *Engine) RemoveTopSprite(cell image.Point) *MapSprite {
	if e.sprites == nil {
		return nil
	}
	s := e.sprites.Pop(cell)
	if s != nil {
		e.spriteLayer.Release(s.handle)
	}
	return s
}

// Close tears down every subscription and releases all visuals.
func (e *Engine) Close() {
	e.events.close()
	e.resize.Cancel()
	e.tileLayer.Clear()
	e.spriteLayer.Clear()
}
