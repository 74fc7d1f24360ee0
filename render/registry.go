package render

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pixel2d/assets"
	"github.com/milk9111/pixel2d/tileset"
	"github.com/sirupsen/logrus"
)

const (
	regionCounters  = 10000
	regionMaxCost   = 64 * 1024 * 1024
	regionBufferLen = 64
)

// regionCache holds sub-images cut from tileset sheets, costed by pixel bytes.
type regionCache[V any] struct {
	cache *ristretto.Cache[string, V]
}

func newRegionCache[V any]() (*regionCache[V], error) {
	cache, err := ristretto.NewCache[string, V](&ristretto.Config[string, V]{
		NumCounters: regionCounters,
		MaxCost:     regionMaxCost,
		BufferItems: regionBufferLen,
	})
	if err != nil {
		return nil, err
	}
	return &regionCache[V]{cache: cache}, nil
}

func regionKey(sheet string, r image.Rectangle) string {
	return fmt.Sprintf("%s|%d,%d,%d,%d", sheet, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

func (c *regionCache[V]) get(key string) (V, bool) {
	return c.cache.Get(key)
}

func (c *regionCache[V]) set(key string, v V, r image.Rectangle) {
	cost := int64(r.Dx() * r.Dy() * 4)
	if cost <= 0 {
		cost = 1
	}
	c.cache.Set(key, v, cost)
	c.cache.Wait()
}

func (c *regionCache[V]) clear() {
	c.cache.Clear()
}

func (c *regionCache[V]) close() {
	c.cache.Close()
}

// Registry owns the GPU images for one editing session. Sheets are decoded
// once per tileset image; regions are sub-images of those sheets.
type Registry struct {
	fsys    fs.FS
	sheets  map[string]*ebiten.Image
	regions *regionCache[*ebiten.Image]
	log     *logrus.Entry
}

// NewRegistry resolves tileset images against fsys.
func NewRegistry(fsys fs.FS, log *logrus.Entry) (*Registry, error) {
	regions, err := newRegionCache[*ebiten.Image]()
	if err != nil {
		return nil, fmt.Errorf("render: region cache: %w", err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Registry{
		fsys:    fsys,
		sheets:  map[string]*ebiten.Image{},
		regions: regions,
		log:     log,
	}, nil
}

// Reset drops every cached image and resolves future loads against fsys.
func (r *Registry) Reset(fsys fs.FS) {
	for _, img := range r.sheets {
		img.Deallocate()
	}
	r.fsys = fsys
	r.sheets = map[string]*ebiten.Image{}
	r.regions.clear()
}

// Sheet returns the full image of ts, loading it on first use.
func (r *Registry) Sheet(ts *tileset.Tileset) (*ebiten.Image, error) {
	if ts == nil || ts.Image == "" {
		return nil, fmt.Errorf("render: empty image key")
	}
	if img, ok := r.sheets[ts.Image]; ok {
		return img, nil
	}
	src, err := assets.DecodeImage(r.fsys, ts.Image)
	if err != nil {
		return nil, fmt.Errorf("render: tileset %s: %w", ts.Name, err)
	}
	img := ebiten.NewImageFromImage(src)
	r.sheets[ts.Image] = img
	r.log.WithFields(logrus.Fields{"tileset": ts.Name, "image": ts.Image}).Debug("sheet loaded")
	return img, nil
}

// Region returns the part of ts's sheet inside src.
func (r *Registry) Region(ts *tileset.Tileset, src image.Rectangle) (*ebiten.Image, error) {
	sheet, err := r.Sheet(ts)
	if err != nil {
		return nil, err
	}
	key := regionKey(ts.Image, src)
	if img, ok := r.regions.get(key); ok {
		return img, nil
	}
	if !src.In(sheet.Bounds()) {
		return nil, fmt.Errorf("render: region %v outside %s", src, ts.Image)
	}
	img := sheet.SubImage(src).(*ebiten.Image)
	r.regions.set(key, img, src)
	return img, nil
}

func (r *Registry) Close() {
	r.Reset(nil)
	r.regions.close()
}
