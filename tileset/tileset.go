package tileset

import (
	"fmt"
	"image"

	"gopkg.in/yaml.v3"
)

// DefaultTileSize is used when a catalog gives no tile size.
const DefaultTileSize = 16

// Box is an axis-aligned bounding box relative to a sprite's origin.
type Box struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// Bottom returns the y coordinate of the box's lower edge.
func (b Box) Bottom() int {
	return b.Y + b.H
}

// Tile is a fixed-size cell graphic located at (X, Y) in the tileset image.
type Tile struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	X    int    `yaml:"x" json:"x"`
	Y    int    `yaml:"y" json:"y"`
}

// Entity is a placeable sprite definition.
type Entity struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	W    int    `yaml:"w" json:"w"`
	H    int    `yaml:"h" json:"h"`
	X    int    `yaml:"x" json:"x"`
	Y    int    `yaml:"y" json:"y"`
	Box  *Box   `yaml:"box,omitempty" json:"box,omitempty"`
}

// Source returns the entity's rectangle within the tileset image.
func (e *Entity) Source() image.Rectangle {
	return image.Rect(e.X, e.Y, e.X+e.W, e.Y+e.H)
}

// EffectiveHeight is the bottom of the bounding box if there is one, else the raw height.
func (e *Entity) EffectiveHeight() int {
	if e.Box != nil {
		return e.Box.Bottom()
	}
	return e.H
}

// Tileset is an immutable catalog of tiles and entities cut from one image.
type Tileset struct {
	Name     string
	Image    string
	TileW    int
	TileH    int
	Tiles    []Tile
	Entities []Entity

	tilesByID    map[int]*Tile
	entitiesByID map[int]*Entity
}

// TileByID returns the tile with id or nil.
func (ts *Tileset) TileByID(id int) *Tile {
	if ts == nil {
		return nil
	}
	return ts.tilesByID[id]
}

// EntityByID returns the entity with id or nil.
func (ts *Tileset) EntityByID(id int) *Entity {
	if ts == nil {
		return nil
	}
	return ts.entitiesByID[id]
}

// TileSource returns the rectangle of t within the tileset image.
func (ts *Tileset) TileSource(t *Tile) image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+ts.TileW, t.Y+ts.TileH)
}

type tileAssets struct {
	W        int    `yaml:"w"`
	H        int    `yaml:"h"`
	Textures []Tile `yaml:"textures"`
}

// UnmarshalYAML accepts either the nested {w, h, textures} mapping or a
// flat list of tiles.
func (a *tileAssets) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&a.Textures)
	}
	type plain tileAssets
	return node.Decode((*plain)(a))
}

type rawTileset struct {
	Name     string     `yaml:"name"`
	Image    string     `yaml:"image"`
	TileW    int        `yaml:"tile_w"`
	TileH    int        `yaml:"tile_h"`
	Tiles    tileAssets `yaml:"tiles"`
	Entities []Entity   `yaml:"entities"`
}

// Parse decodes a tileset catalog. JSON input is accepted as well since it is valid YAML.
func Parse(data []byte) (*Tileset, error) {
	var raw rawTileset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tileset: unmarshal: %w", err)
	}
	return build(raw)
}

func build(raw rawTileset) (*Tileset, error) {
	if raw.Image == "" {
		return nil, fmt.Errorf("tileset %q: image is required", raw.Name)
	}
	ts := &Tileset{
		Name:         raw.Name,
		Image:        raw.Image,
		TileW:        raw.Tiles.W,
		TileH:        raw.Tiles.H,
		Tiles:        raw.Tiles.Textures,
		Entities:     raw.Entities,
		tilesByID:    make(map[int]*Tile, len(raw.Tiles.Textures)),
		entitiesByID: make(map[int]*Entity, len(raw.Entities)),
	}
	if ts.Name == "" {
		ts.Name = raw.Image
	}
	if ts.TileW == 0 {
		ts.TileW = raw.TileW
	}
	if ts.TileH == 0 {
		ts.TileH = raw.TileH
	}
	if ts.TileW == 0 {
		ts.TileW = DefaultTileSize
	}
	if ts.TileH == 0 {
		ts.TileH = DefaultTileSize
	}
	if ts.TileW < 0 || ts.TileH < 0 {
		return nil, fmt.Errorf("tileset %q: invalid tile size %dx%d", ts.Name, ts.TileW, ts.TileH)
	}

	for i := range ts.Tiles {
		t := &ts.Tiles[i]
		if _, dup := ts.tilesByID[t.ID]; dup {
			return nil, fmt.Errorf("tileset %q: duplicate tile id %d", ts.Name, t.ID)
		}
		ts.tilesByID[t.ID] = t
	}
	for i := range ts.Entities {
		e := &ts.Entities[i]
		if _, dup := ts.entitiesByID[e.ID]; dup {
			return nil, fmt.Errorf("tileset %q: duplicate entity id %d", ts.Name, e.ID)
		}
		if e.W <= 0 || e.H <= 0 {
			return nil, fmt.Errorf("tileset %q: entity %d has invalid size %dx%d", ts.Name, e.ID, e.W, e.H)
		}
		if e.Box != nil && (e.Box.W <= 0 || e.Box.H <= 0) {
			return nil, fmt.Errorf("tileset %q: entity %d has invalid box", ts.Name, e.ID)
		}
		ts.entitiesByID[e.ID] = e
	}
	return ts, nil
}
