package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path/filepath"
	"strings"
)

// TilesetDir is the embedded directory holding the default catalog.
const TilesetDir = "tilesets"

//go:embed tilesets
var assetsFS embed.FS

// FS returns the embedded assets.
func FS() fs.FS {
	return assetsFS
}

// Tilesets returns the default catalog rooted at its directory, so catalog
// files and the images they reference resolve against the same root.
func Tilesets() fs.FS {
	sub, err := fs.Sub(assetsFS, TilesetDir)
	if err != nil {
		// TilesetDir is embedded; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// DecodeImage decodes the image at path inside fsys.
func DecodeImage(fsys fs.FS, path string) (image.Image, error) {
	b, err := fs.ReadFile(fsys, cleanAssetPath(path))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "./")
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
