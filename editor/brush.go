package editor

import (
	"fmt"
	"image"
	"strings"

	"github.com/milk9111/pixel2d/tileset"
)

// BrushMode selects how a brush paints.
type BrushMode int

const (
	ModeNone BrushMode = iota
	ModePencil
	ModeFill
	ModeEraser
)

// Modes lists every brush mode in toolbar order.
var Modes = []BrushMode{ModeNone, ModePencil, ModeFill, ModeEraser}

func (m BrushMode) String() string {
	switch m {
	case ModeNone:
		return "Pointer"
	case ModePencil:
		return "Pencil"
	case ModeFill:
		return "Fill"
	case ModeEraser:
		return "Eraser"
	default:
		return "Unknown"
	}
}

// Continuous reports whether the mode keeps painting while the pointer is dragged.
func (m BrushMode) Continuous() bool {
	return m == ModePencil || m == ModeEraser
}

// ParseBrushMode accepts a mode name, case-insensitively. "none" is an alias for the pointer.
func ParseBrushMode(s string) (BrushMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "pointer":
		return ModeNone, nil
	case "pencil":
		return ModePencil, nil
	case "fill":
		return ModeFill, nil
	case "eraser", "erase":
		return ModeEraser, nil
	}
	return ModeNone, fmt.Errorf("unknown brush mode %q", s)
}

// Brush is the current paint configuration: a mode plus either a tile or a sprite.
type Brush struct {
	mode    BrushMode
	tileset *tileset.Tileset
	tile    *tileset.Tile
	sprite  *tileset.Entity
}

// NewBrush returns a pencil brush with nothing selected.
func NewBrush() *Brush {
	return &Brush{mode: ModePencil}
}

func (b *Brush) Mode() BrushMode {
	return b.mode
}

func (b *Brush) SetMode(mode BrushMode) {
	b.mode = mode
}

// SetTile selects a tile and clears any sprite selection.
func (b *Brush) SetTile(ts *tileset.Tileset, tile *tileset.Tile) {
	b.tileset = ts
	b.tile = tile
	b.sprite = nil
}

// SetSprite selects a sprite and clears any tile selection.
func (b *Brush) SetSprite(ts *tileset.Tileset, sprite *tileset.Entity) {
	b.tileset = ts
	b.sprite = sprite
	b.tile = nil
}

func (b *Brush) Tileset() *tileset.Tileset {
	return b.tileset
}

func (b *Brush) Tile() *tileset.Tile {
	return b.tile
}

func (b *Brush) Sprite() *tileset.Entity {
	return b.sprite
}

// IsTile reports whether the tile variant is active. Meaningless when the brush is invalid.
func (b *Brush) IsTile() bool {
	return b.tile != nil
}

// IsValid reports whether a tileset and exactly one of tile or sprite are selected.
func (b *Brush) IsValid() bool {
	return b.tileset != nil && (b.tile != nil) != (b.sprite != nil)
}

// Paint renders the current selection as a visual anchored at pos, in content pixels.
func (b *Brush) Paint(pos image.Point) Visual {
	return Visual{Tileset: b.tileset, Tile: b.tile, Entity: b.sprite, Pos: pos}
}
