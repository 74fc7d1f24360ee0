package tileset

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog holds every tileset loaded for an editing session, keyed by name.
type Catalog struct {
	sets map[string]*Tileset
}

// NewCatalog builds a catalog from already parsed tilesets.
func NewCatalog(sets ...*Tileset) (*Catalog, error) {
	c := &Catalog{sets: make(map[string]*Tileset, len(sets))}
	for _, ts := range sets {
		if ts == nil {
			continue
		}
		if _, dup := c.sets[ts.Name]; dup {
			return nil, fmt.Errorf("tileset: duplicate tileset %q", ts.Name)
		}
		c.sets[ts.Name] = ts
	}
	return c, nil
}

// LoadCatalog parses every catalog file in dir.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("tileset: read dir %s: %w", dir, err)
	}

	var sets []*Tileset
	for _, entry := range entries {
		if entry.IsDir() || !IsCatalogFile(entry.Name()) {
			continue
		}
		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("tileset: load %s: %w", name, err)
		}
		ts, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("tileset: parse %s: %w", name, err)
		}
		if ts.Name == ts.Image {
			ts.Name = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}
		sets = append(sets, ts)
	}
	return NewCatalog(sets...)
}

// Tileset returns the named tileset or nil.
func (c *Catalog) Tileset(name string) *Tileset {
	if c == nil {
		return nil
	}
	return c.sets[name]
}

// Names returns the tileset names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of tilesets.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sets)
}

// IsCatalogFile reports whether path has a catalog extension.
func IsCatalogFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml" || ext == ".json"
}
