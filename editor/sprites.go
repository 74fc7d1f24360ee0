package editor

import (
	"image"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pixel2d/tileset"
)

// MapSprite is a sprite placed on the map with its origin at Cell.
type MapSprite struct {
	Tileset *tileset.Tileset
	Entity  *tileset.Entity
	Cell    image.Point
	// Pos is the top-left corner in content pixels.
	Pos    image.Point
	handle Handle
}

// Handle returns the sprite layer handle of the placed visual.
func (s *MapSprite) Handle() Handle {
	return s.handle
}

// Bounds returns the sprite's raw extent in content pixels.
func (s *MapSprite) Bounds() image.Rectangle {
	return image.Rect(s.Pos.X, s.Pos.Y, s.Pos.X+s.Entity.W, s.Pos.Y+s.Entity.H)
}

// BoundingBox returns the collision box in content pixels. Sprites without a
// box report false.
func (s *MapSprite) BoundingBox() (cp.BB, bool) {
	return entityBB(s.Entity, s.Pos)
}

// SortKey is the baseline used for painter's ordering.
func (s *MapSprite) SortKey() int {
	return s.Pos.Y + s.Entity.EffectiveHeight()
}

// entityBB translates e's box to origin. L/B hold the minimum corner.
func entityBB(e *tileset.Entity, origin image.Point) (cp.BB, bool) {
	if e == nil || e.Box == nil {
		return cp.BB{}, false
	}
	x := float64(origin.X + e.Box.X)
	y := float64(origin.Y + e.Box.Y)
	return cp.BB{L: x, B: y, R: x + float64(e.Box.W), T: y + float64(e.Box.H)}, true
}

// overlaps is a half-open AABB test: boxes that only share an edge do not overlap.
func overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

func containsPoint(bb cp.BB, p cp.Vector) bool {
	return p.X >= bb.L && p.X < bb.R && p.Y >= bb.B && p.Y < bb.T
}

// SpriteIndex stores placed sprites as insertion-ordered stacks keyed by origin cell.
type SpriteIndex struct {
	width    int
	height   int
	tileSize int
	stacks   map[image.Point][]*MapSprite
	count    int
}

func NewSpriteIndex(width, height, tileSize int) *SpriteIndex {
	return &SpriteIndex{
		width:    width,
		height:   height,
		tileSize: tileSize,
		stacks:   make(map[image.Point][]*MapSprite),
	}
}

func (si *SpriteIndex) inBounds(p image.Point) bool {
	return p.In(image.Rect(0, 0, si.width, si.height))
}

// Len returns the number of placed sprites.
func (si *SpriteIndex) Len() int {
	if si == nil {
		return 0
	}
	return si.count
}

// Push puts s on top of the stack at cell. Cells outside the map are ignored.
func (si *SpriteIndex) Push(cell image.Point, s *MapSprite) bool {
	if s == nil || !si.inBounds(cell) {
		return false
	}
	si.stacks[cell] = append(si.stacks[cell], s)
	si.count++
	return true
}

// Peek returns the most recently pushed sprite at cell, or nil.
func (si *SpriteIndex) Peek(cell image.Point) *MapSprite {
	stack := si.stacks[cell]
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

// Pop removes and returns the most recently pushed sprite at cell, or nil.
func (si *SpriteIndex) Pop(cell image.Point) *MapSprite {
	stack := si.stacks[cell]
	n := len(stack)
	if n == 0 {
		return nil
	}
	top := stack[n-1]
	stack[n-1] = nil
	if n == 1 {
		delete(si.stacks, cell)
	} else {
		si.stacks[cell] = stack[:n-1]
	}
	si.count--
	return top
}

// Stack returns a copy of the sprites at cell, bottom first.
func (si *SpriteIndex) Stack(cell image.Point) []*MapSprite {
	stack := si.stacks[cell]
	if len(stack) == 0 {
		return nil
	}
	out := make([]*MapSprite, len(stack))
	copy(out, stack)
	return out
}

// Collides reports whether e placed at cell would overlap the bounding box of
// any placed sprite. Only bounding boxes take part; a sprite without one
// never collides.
func (si *SpriteIndex) Collides(cell image.Point, e *tileset.Entity) bool {
	candidate, ok := entityBB(e, cell.Mul(si.tileSize))
	if !ok {
		return false
	}
	for _, stack := range si.stacks {
		for _, s := range stack {
			if bb, ok := s.BoundingBox(); ok && overlaps(candidate, bb) {
				return true
			}
		}
	}
	return false
}

// SpritesAt returns every sprite whose raw extent contains the content-space point p.
func (si *SpriteIndex) SpritesAt(p cp.Vector) []*MapSprite {
	var out []*MapSprite
	si.Each(func(s *MapSprite) {
		b := s.Bounds()
		bb := cp.BB{L: float64(b.Min.X), B: float64(b.Min.Y), R: float64(b.Max.X), T: float64(b.Max.Y)}
		if containsPoint(bb, p) {
			out = append(out, s)
		}
	})
	return out
}

// Each visits every sprite, row-major by origin cell and bottom to top within a stack.
func (si *SpriteIndex) Each(fn func(s *MapSprite)) {
	cells := make([]image.Point, 0, len(si.stacks))
	for cell := range si.stacks {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	for _, cell := range cells {
		for _, s := range si.stacks[cell] {
			fn(s)
		}
	}
}
