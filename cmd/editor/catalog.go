package main

import (
	"io/fs"
	"os"

	"github.com/milk9111/pixel2d/assets"
	"github.com/milk9111/pixel2d/tileset"
)

// catalogSource loads tileset catalogs from a directory on disk, or from the
// embedded defaults when dir is empty.
type catalogSource struct {
	dir string
}

func (s catalogSource) FS() fs.FS {
	if s.dir == "" {
		return assets.Tilesets()
	}
	return os.DirFS(s.dir)
}

func (s catalogSource) Load() (*tileset.Catalog, error) {
	return tileset.LoadCatalog(s.FS(), ".")
}

func (s catalogSource) String() string {
	if s.dir == "" {
		return "embedded"
	}
	return s.dir
}
