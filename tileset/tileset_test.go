package tileset

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overworldYAML = `
name: overworld
image: overworld.png
tiles:
  w: 16
  h: 16
  textures:
    - {id: 1, name: grass, x: 0, y: 0}
    - {id: 2, name: water, x: 16, y: 0}
entities:
  - {id: 1, name: tree, w: 32, h: 48, x: 0, y: 16, box: {x: 8, y: 32, w: 16, h: 16}}
  - {id: 2, name: flower, w: 16, h: 16, x: 32, y: 16}
`

const dungeonJSON = `{
  "image": "dungeon.png",
  "tiles": {"textures": [{"id": 7, "name": "floor", "x": 0, "y": 0}]},
  "entities": []
}`

func TestParse(t *testing.T) {
	ts, err := Parse([]byte(overworldYAML))
	require.NoError(t, err)

	assert.Equal(t, "overworld", ts.Name)
	assert.Equal(t, "overworld.png", ts.Image)
	assert.Len(t, ts.Tiles, 2)
	assert.Len(t, ts.Entities, 2)

	water := ts.TileByID(2)
	require.NotNil(t, water)
	assert.Equal(t, "water", water.Name)
	assert.Equal(t, image.Rect(16, 0, 32, 16), ts.TileSource(water))
	assert.Nil(t, ts.TileByID(99))

	tree := ts.EntityByID(1)
	require.NotNil(t, tree)
	require.NotNil(t, tree.Box)
	assert.Equal(t, 48, tree.EffectiveHeight())
	assert.Equal(t, image.Rect(0, 16, 32, 64), tree.Source())

	flower := ts.EntityByID(2)
	require.NotNil(t, flower)
	assert.Nil(t, flower.Box)
	assert.Equal(t, 16, flower.EffectiveHeight())
}

func TestParseJSONDefaults(t *testing.T) {
	ts, err := Parse([]byte(dungeonJSON))
	require.NoError(t, err)

	assert.Equal(t, "dungeon.png", ts.Name)
	assert.Equal(t, DefaultTileSize, ts.TileW)
	assert.Equal(t, DefaultTileSize, ts.TileH)
	assert.NotNil(t, ts.TileByID(7))
}

func TestParseFlatTileList(t *testing.T) {
	data := `{"image":"s.png","tile_w":8,"tile_h":12,
		"tiles":[{"id":1,"name":"floor","x":0,"y":0},{"id":2,"name":"wall","x":8,"y":0}],
		"entities":[{"id":1,"name":"crate","w":8,"h":8,"x":0,"y":12}]}`

	ts, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 8, ts.TileW)
	assert.Equal(t, 12, ts.TileH)
	require.Len(t, ts.Tiles, 2)
	assert.Equal(t, "wall", ts.TileByID(2).Name)
	assert.Equal(t, image.Rect(8, 0, 16, 12), ts.TileSource(ts.TileByID(2)))
	assert.Equal(t, "crate", ts.EntityByID(1).Name)
}

func TestParseFlatTileListDefaultSize(t *testing.T) {
	ts, err := Parse([]byte(`{"image":"s.png","tiles":[{"id":3,"name":"grass","x":16,"y":0}]}`))
	require.NoError(t, err)

	assert.Equal(t, DefaultTileSize, ts.TileW)
	assert.Equal(t, DefaultTileSize, ts.TileH)
	assert.NotNil(t, ts.TileByID(3))
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing_image", "tiles: {textures: []}"},
		{"duplicate_tile", "image: a.png\ntiles: {textures: [{id: 1}, {id: 1}]}"},
		{"duplicate_entity", "image: a.png\nentities: [{id: 1, w: 1, h: 1}, {id: 1, w: 1, h: 1}]"},
		{"empty_entity", "image: a.png\nentities: [{id: 1, w: 0, h: 4}]"},
		{"empty_box", "image: a.png\nentities: [{id: 1, w: 4, h: 4, box: {x: 0, y: 0, w: 0, h: 2}}]"},
		{"negative_tile_size", "image: a.png\ntiles: {w: -16, h: 16}"},
		{"malformed", "image: [unterminated"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.src))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"tilesets/overworld.yaml": {Data: []byte(overworldYAML)},
		"tilesets/dungeon.json":   {Data: []byte(dungeonJSON)},
		"tilesets/readme.txt":     {Data: []byte("ignored")},
		"tilesets/overworld.png":  {Data: []byte{0x89}},
	}

	cat, err := LoadCatalog(fsys, "tilesets")
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, []string{"dungeon", "overworld"}, cat.Names())
	assert.NotNil(t, cat.Tileset("overworld"))
	assert.NotNil(t, cat.Tileset("dungeon"))
	assert.Nil(t, cat.Tileset("missing"))
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(fstest.MapFS{}, "nowhere")
	assert.Error(t, err)

	bad := fstest.MapFS{"sets/bad.yaml": {Data: []byte("tiles: {}")}}
	_, err = LoadCatalog(bad, "sets")
	assert.ErrorContains(t, err, "sets/bad.yaml")

	a, err := Parse([]byte(overworldYAML))
	require.NoError(t, err)
	b, err := Parse([]byte(overworldYAML))
	require.NoError(t, err)
	_, err = NewCatalog(a, b)
	assert.Error(t, err)
}

func TestWatcherReportsCatalogChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "overworld.yaml")
	require.NoError(t, os.WriteFile(target, []byte(overworldYAML), 0o644))

	select {
	case change := <-w.Changes:
		assert.Equal(t, target, change.Path)
		assert.False(t, change.Removed)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for catalog change")
	}
}

func TestChangeFilter(t *testing.T) {
	f := newChangeFilter(100 * time.Millisecond)
	start := time.Unix(0, 0)

	_, ok := f.admit(fsnotify.Event{Name: "a/notes.txt", Op: fsnotify.Write}, start)
	assert.False(t, ok)
	_, ok = f.admit(fsnotify.Event{Name: "a/town.yaml", Op: fsnotify.Chmod}, start)
	assert.False(t, ok)

	change, ok := f.admit(fsnotify.Event{Name: "a/town.yaml", Op: fsnotify.Write}, start)
	require.True(t, ok)
	assert.Equal(t, Change{Path: "a/town.yaml"}, change)

	_, ok = f.admit(fsnotify.Event{Name: "a/town.yaml", Op: fsnotify.Write}, start.Add(50*time.Millisecond))
	assert.False(t, ok)

	change, ok = f.admit(fsnotify.Event{Name: "a/town.yaml", Op: fsnotify.Remove}, start.Add(150*time.Millisecond))
	require.True(t, ok)
	assert.True(t, change.Removed)
}

func TestWatcherClosesChannelsOnClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for range w.Changes {
	}
	for range w.Errors {
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, err = NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
