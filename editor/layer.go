package editor

import (
	"image"
	"sort"

	"github.com/milk9111/pixel2d/tileset"
)

// Visual is a drawable owned by a Layer: a tile or a sprite cut from a
// tileset, anchored at Pos in unscaled content pixels.
type Visual struct {
	Tileset *tileset.Tileset
	Tile    *tileset.Tile
	Entity  *tileset.Entity
	Pos     image.Point
}

// Source returns the region of the tileset image the visual draws.
func (v Visual) Source() image.Rectangle {
	switch {
	case v.Tile != nil && v.Tileset != nil:
		return v.Tileset.TileSource(v.Tile)
	case v.Entity != nil:
		return v.Entity.Source()
	}
	return image.Rectangle{}
}

// Bounds returns the visual's extent in content pixels.
func (v Visual) Bounds() image.Rectangle {
	src := v.Source()
	return image.Rectangle{Min: v.Pos, Max: v.Pos.Add(src.Size())}
}

// Handle identifies a visual inside a Layer. The zero Handle is never issued.
type Handle uint64

const handleSlotBits = 32

func makeHandle(slot, gen uint32) Handle {
	return Handle(uint64(gen)<<handleSlotBits | uint64(slot+1))
}

func (h Handle) slot() int {
	return int(uint32(h)) - 1
}

func (h Handle) generation() uint32 {
	return uint32(uint64(h) >> handleSlotBits)
}

func (h Handle) Valid() bool {
	return uint32(h) != 0
}

type layerSlot struct {
	visual Visual
	gen    uint32
	alive  bool
}

// Layer exclusively owns the visuals added to it. Visuals stay alive until
// released through their Handle; released slots are recycled with a new
// generation so stale handles never resolve.
type Layer struct {
	slots []layerSlot
	free  []uint32
	order []Handle
	stale int
	live  int
}

func NewLayer() *Layer {
	return &Layer{}
}

// Add takes ownership of v and appends it to the draw order.
func (l *Layer) Add(v Visual) Handle {
	var idx uint32
	if n := len(l.free); n > 0 {
		idx = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		idx = uint32(len(l.slots))
		l.slots = append(l.slots, layerSlot{})
	}
	s := &l.slots[idx]
	s.gen++
	s.visual = v
	s.alive = true

	h := makeHandle(idx, s.gen)
	l.order = append(l.order, h)
	l.live++
	return h
}

// Release frees the visual behind h. It returns false for stale or unknown handles.
func (l *Layer) Release(h Handle) bool {
	if !l.Has(h) {
		return false
	}
	idx := h.slot()
	l.slots[idx].alive = false
	l.slots[idx].visual = Visual{}
	l.free = append(l.free, uint32(idx))
	l.live--
	l.stale++
	if l.stale > len(l.order)/2 {
		l.compact()
	}
	return true
}

// Has reports whether h refers to a live visual.
func (l *Layer) Has(h Handle) bool {
	if l == nil || !h.Valid() {
		return false
	}
	idx := h.slot()
	if idx < 0 || idx >= len(l.slots) {
		return false
	}
	s := l.slots[idx]
	return s.alive && s.gen == h.generation()
}

// Get returns the visual behind h.
func (l *Layer) Get(h Handle) (Visual, bool) {
	if !l.Has(h) {
		return Visual{}, false
	}
	return l.slots[h.slot()].visual, true
}

// Len returns the number of live visuals.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return l.live
}

// Each visits live visuals in draw order.
func (l *Layer) Each(fn func(h Handle, v Visual)) {
	if l == nil {
		return
	}
	for _, h := range l.order {
		if l.Has(h) {
			fn(h, l.slots[h.slot()].visual)
		}
	}
}

// Handles returns the live handles in draw order.
func (l *Layer) Handles() []Handle {
	if l == nil {
		return nil
	}
	l.compact()
	out := make([]Handle, len(l.order))
	copy(out, l.order)
	return out
}

// SortStable reorders the draw order with less, keeping equal elements in insertion order.
func (l *Layer) SortStable(less func(a, b Visual) bool) {
	l.compact()
	sort.SliceStable(l.order, func(i, j int) bool {
		return less(l.slots[l.order[i].slot()].visual, l.slots[l.order[j].slot()].visual)
	})
}

// Clear releases every visual.
func (l *Layer) Clear() {
	if l == nil {
		return
	}
	l.free = l.free[:0]
	for i := range l.slots {
		l.slots[i].alive = false
		l.slots[i].visual = Visual{}
		l.free = append(l.free, uint32(i))
	}
	l.order = l.order[:0]
	l.stale = 0
	l.live = 0
}

func (l *Layer) compact() {
	if l.stale == 0 {
		return
	}
	kept := l.order[:0]
	for _, h := range l.order {
		if l.Has(h) {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(l.order); i++ {
		l.order[i] = 0
	}
	l.order = kept
	l.stale = 0
}
