package editor

import (
	"image"

	"github.com/milk9111/pixel2d/tileset"
)

// MapTile is a tile placed on the grid.
type MapTile struct {
	Tileset *tileset.Tileset
	Tile    *tileset.Tile
	handle  Handle
}

// Handle returns the tile layer handle of the placed visual.
func (t *MapTile) Handle() Handle {
	return t.handle
}

// Is reports whether t holds exactly the given tile of the given tileset.
func (t *MapTile) Is(ts *tileset.Tileset, tile *tileset.Tile) bool {
	return t != nil && t.Tileset == ts && t.Tile == tile
}

// GridStore is the fixed-size array of placed tiles. It owns the tile layer
// handles of every tile it stores.
type GridStore struct {
	width    int
	height   int
	tileSize int
	cells    []*MapTile
	layer    *Layer
	count    int
}

// NewGridStore creates an empty width x height grid whose visuals live in layer.
func NewGridStore(width, height, tileSize int, layer *Layer) *GridStore {
	return &GridStore{
		width:    width,
		height:   height,
		tileSize: tileSize,
		cells:    make([]*MapTile, width*height),
		layer:    layer,
	}
}

func (g *GridStore) Width() int {
	return g.width
}

func (g *GridStore) Height() int {
	return g.height
}

// Bounds returns the grid as a half-open rectangle of cells.
func (g *GridStore) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// InBounds reports whether p lies in [0,width)x[0,height).
func (g *GridStore) InBounds(p image.Point) bool {
	return p.In(g.Bounds())
}

// Len returns the number of occupied cells.
func (g *GridStore) Len() int {
	return g.count
}

func (g *GridStore) index(p image.Point) int {
	return p.Y*g.width + p.X
}

// Get returns the tile at p, or nil when the cell is empty or out of bounds.
func (g *GridStore) Get(p image.Point) *MapTile {
	if !g.InBounds(p) {
		return nil
	}
	return g.cells[g.index(p)]
}

// Set places tile at p. Re-setting the tile a cell already holds changes
// nothing; different content is released before the new visual is added.
// It reports whether the cell changed.
func (g *GridStore) Set(p image.Point, ts *tileset.Tileset, tile *tileset.Tile) bool {
	if !g.InBounds(p) || ts == nil || tile == nil {
		return false
	}
	idx := g.index(p)
	old := g.cells[idx]
	if old.Is(ts, tile) {
		return false
	}
	if old != nil {
		g.layer.Release(old.handle)
		g.count--
	}

	v := Visual{Tileset: ts, Tile: tile, Pos: p.Mul(g.tileSize)}
	g.cells[idx] = &MapTile{Tileset: ts, Tile: tile, handle: g.layer.Add(v)}
	g.count++
	return true
}

// Remove clears p and releases its visual. It reports whether a tile was removed.
func (g *GridStore) Remove(p image.Point) bool {
	if !g.InBounds(p) {
		return false
	}
	idx := g.index(p)
	old := g.cells[idx]
	if old == nil {
		return false
	}
	g.layer.Release(old.handle)
	g.cells[idx] = nil
	g.count--
	return true
}

// Each visits occupied cells in row-major order.
func (g *GridStore) Each(fn func(p image.Point, t *MapTile)) {
	for i, t := range g.cells {
		if t != nil {
			fn(image.Pt(i%g.width, i/g.width), t)
		}
	}
}

// sameAs reports whether the content at p matches ref, where a nil ref
// matches only empty cells.
func (g *GridStore) sameAs(p image.Point, ref *MapTile) bool {
	cur := g.Get(p)
	if ref == nil {
		return cur == nil
	}
	return cur.Is(ref.Tileset, ref.Tile)
}
