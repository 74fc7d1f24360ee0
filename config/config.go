package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PIXEL2D_MAP_WIDTH.
const EnvPrefix = "PIXEL2D"

// Minimum window size; smaller windows leave no room for the canvas beside
// the editor panels.
const (
	MinWindowWidth  = 320
	MinWindowHeight = 240
)

type Window struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Map struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Catalog struct {
	// Dir is a directory of tileset catalogs on disk; empty uses the embedded set.
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Config is the editor configuration.
type Config struct {
	TileSize       int           `mapstructure:"tile_size"`
	Zoom           int           `mapstructure:"zoom"`
	ScrollSize     int           `mapstructure:"scroll_size"`
	ResizeDebounce time.Duration `mapstructure:"resize_debounce"`
	Window         Window        `mapstructure:"window"`
	Map            Map           `mapstructure:"map"`
	Catalog        Catalog       `mapstructure:"catalog"`
	Log            Log           `mapstructure:"log"`
	// Script is a tengo macro run against the map after start-up.
	Script string `mapstructure:"script"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tile_size", 16)
	v.SetDefault("zoom", 2)
	v.SetDefault("scroll_size", 15)
	v.SetDefault("resize_debounce", "500ms")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("map.width", 64)
	v.SetDefault("map.height", 64)
	v.SetDefault("catalog.dir", "")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("script", "")
}

// Load reads path (if not empty) over the defaults and applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tile_size must be positive, got %d", c.TileSize))
	}
	if c.Zoom < 1 {
		errs = append(errs, fmt.Errorf("zoom must be at least 1, got %d", c.Zoom))
	}
	if c.ScrollSize <= 0 {
		errs = append(errs, fmt.Errorf("scroll_size must be positive, got %d", c.ScrollSize))
	}
	if c.ResizeDebounce <= 0 {
		errs = append(errs, fmt.Errorf("resize_debounce must be positive, got %s", c.ResizeDebounce))
	}
	if c.Window.Width < MinWindowWidth || c.Window.Height < MinWindowHeight {
		errs = append(errs, fmt.Errorf("window must be at least %dx%d, got %dx%d",
			MinWindowWidth, MinWindowHeight, c.Window.Width, c.Window.Height))
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		errs = append(errs, fmt.Errorf("map size must be positive, got %dx%d", c.Map.Width, c.Map.Height))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
