package editor

import (
	"io"
	"testing"

	"github.com/milk9111/pixel2d/tileset"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
name: test
image: test.png
tiles:
  w: 16
  h: 16
  textures:
    - {id: 1, name: a, x: 0, y: 0}
    - {id: 2, name: b, x: 16, y: 0}
entities:
  - {id: 1, name: crate, w: 16, h: 16, x: 0, y: 16, box: {x: 0, y: 0, w: 16, h: 16}}
  - {id: 2, name: tall, w: 16, h: 20, x: 16, y: 16, box: {x: 0, y: 14, w: 16, h: 16}}
  - {id: 3, name: short, w: 16, h: 10, x: 32, y: 16, box: {x: 0, y: 24, w: 16, h: 6}}
  - {id: 4, name: grass, w: 16, h: 16, x: 48, y: 16}
`

func loadFixture(t *testing.T) *tileset.Tileset {
	t.Helper()
	ts, err := tileset.Parse([]byte(fixtureYAML))
	require.NoError(t, err)
	return ts
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestEngine returns an engine with a w x h map on a 640x480 canvas at
// the default 16px tiles and 2x zoom.
func newTestEngine(t *testing.T, w, h int, tweak ...func(*Options)) (*Engine, *tileset.Tileset) {
	t.Helper()
	ts := loadFixture(t)
	cat, err := tileset.NewCatalog(ts)
	require.NoError(t, err)

	opts := Options{ScreenWidth: 640, ScreenHeight: 480, Logger: quietLogger()}
	for _, fn := range tweak {
		fn(&opts)
	}
	e := NewEngine(cat, opts)
	require.NoError(t, e.Initialize(w, h))
	t.Cleanup(e.Close)
	return e, ts
}

// spriteNames returns the entity names of the sprite layer in draw order.
func spriteNames(e *Engine) []string {
	var names []string
	e.SpriteLayer().Each(func(_ Handle, v Visual) {
		names = append(names, v.Entity.Name)
	})
	return names
}
