package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/milk9111/pixel2d/config"
	"github.com/milk9111/pixel2d/editor"
	"github.com/milk9111/pixel2d/logging"
	"github.com/milk9111/pixel2d/macro"
	"github.com/milk9111/pixel2d/render"
	"github.com/milk9111/pixel2d/tileset"
	"github.com/sirupsen/logrus"
)

const macroTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mapWidth := flag.Int("width", 0, "Map width in cells (overrides config)")
	mapHeight := flag.Int("height", 0, "Map height in cells (overrides config)")
	script := flag.String("script", "", "Tengo macro to run against the new map")
	catalogDir := flag.String("catalog", "", "Directory of tileset catalogs (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *mapWidth > 0 {
		cfg.Map.Width = *mapWidth
	}
	if *mapHeight > 0 {
		cfg.Map.Height = *mapHeight
	}
	if *script != "" {
		cfg.Script = *script
	}
	if *catalogDir != "" {
		cfg.Catalog.Dir = *catalogDir
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	entry := logrus.NewEntry(logger)

	source := catalogSource{dir: cfg.Catalog.Dir}
	catalog, err := source.Load()
	if err != nil {
		entry.WithError(err).Fatal("load tileset catalog")
	}
	entry.WithFields(logrus.Fields{"source": source.String(), "tilesets": catalog.Len()}).Info("catalog loaded")

	registry, err := render.NewRegistry(source.FS(), entry)
	if err != nil {
		entry.WithError(err).Fatal("create image registry")
	}

	engine := editor.NewEngine(catalog, editor.Options{
		TileSize:     cfg.TileSize,
		InitialZoom:  cfg.Zoom,
		ScrollSize:   cfg.ScrollSize,
		ScreenWidth:  cfg.Window.Width - leftPanelWidth,
		ScreenHeight: cfg.Window.Height - toolbarHeight - statusBarHeight,
		ResizeDelay:  cfg.ResizeDebounce,
		Logger:       entry,
	})
	if err := engine.Initialize(cfg.Map.Width, cfg.Map.Height); err != nil {
		entry.WithError(err).Fatal("initialize map")
	}

	game := NewEditorGame(engine, source, registry, entry)
	defer game.Close()

	if cfg.Script != "" {
		ctx, cancel := context.WithTimeout(context.Background(), macroTimeout)
		if err := macro.NewRunner(engine, entry).RunFile(ctx, cfg.Script); err != nil {
			entry.WithError(err).Error("macro failed")
		}
		cancel()
	}

	if cfg.Catalog.Watch && cfg.Catalog.Dir != "" {
		w, err := tileset.NewWatcher(cfg.Catalog.Dir)
		if err != nil {
			entry.WithError(err).Warn("catalog watching disabled")
		} else {
			game.watcher = w
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("pixel2d")

	if err := ebiten.RunGame(game); err != nil {
		entry.WithError(err).Error("editor stopped")
	}
}
