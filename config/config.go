// Package config loads and saves the grid configuration as TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/BurntSushi/toml"

	"github.com/alexballas/xappgrid/pagergrid"
)

// Palette names accepted in the palette field.
const (
	PaletteRandom = "random"
	PaletteNamed  = "named"
)

// Config holds everything needed to build and drive an app grid.
type Config struct {
	Rows    int `toml:"rows"`
	Columns int `toml:"columns"`

	ColumnGap         float32 `toml:"column_gap"`
	RowGap            float32 `toml:"row_gap"`
	PageGap           float32 `toml:"page_gap"`
	PaddingHorizontal float32 `toml:"padding_horizontal"`
	PaddingVertical   float32 `toml:"padding_vertical"`

	EdgeThreshold     float32 `toml:"edge_threshold"`
	AutoScrollDelayMS int     `toml:"auto_scroll_delay_ms"`
	LongPressMS       int     `toml:"long_press_ms"`
	AnimationMS       int     `toml:"animation_ms"`

	ItemCount int    `toml:"item_count"`
	Seed      uint64 `toml:"seed"`
	Palette   string `toml:"palette"`
}

// Default mirrors the launcher this grid was modelled on: four columns,
// seven rows and a hundred shortcuts.
func Default() Config {
	return Config{
		Rows:              7,
		Columns:           4,
		PaddingHorizontal: 30,
		EdgeThreshold:     pagergrid.DefaultEdgeThreshold,
		AutoScrollDelayMS: int(pagergrid.DefaultAutoScrollDelay / time.Millisecond),
		LongPressMS:       500,
		AnimationMS:       300,
		ItemCount:         100,
		Seed:              13,
		Palette:           PaletteRandom,
	}
}

// Path returns ./xappgrid.toml when present, else
// ~/.config/xappgrid/config.toml.
func Path() string {
	if _, err := os.Stat("./xappgrid.toml"); err == nil {
		return "./xappgrid.toml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./xappgrid.toml"
	}
	return filepath.Join(home, ".config", "xappgrid", "config.toml")
}

// Load reads path. A missing file yields the defaults without error; keys
// absent from the file keep their default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	return f.Close()
}

// Validate checks the geometry and timing values.
func (c Config) Validate() error {
	if err := c.Geometry(fyne.Size{}).Validate(); err != nil {
		return err
	}
	if c.EdgeThreshold < 0 || c.AutoScrollDelayMS < 0 || c.LongPressMS < 0 || c.AnimationMS < 0 {
		return fmt.Errorf("negative threshold or delay: %w", pagergrid.ErrInvalidConfiguration)
	}
	if c.ItemCount < 0 {
		return fmt.Errorf("item_count %d: %w", c.ItemCount, pagergrid.ErrInvalidConfiguration)
	}
	switch c.Palette {
	case "", PaletteRandom, PaletteNamed:
	default:
		return fmt.Errorf("palette %q: %w", c.Palette, pagergrid.ErrInvalidConfiguration)
	}
	return nil
}

// Geometry converts the page settings for a viewport.
func (c Config) Geometry(viewport fyne.Size) pagergrid.Geometry {
	return pagergrid.Geometry{
		Rows:              c.Rows,
		Columns:           c.Columns,
		ColumnGap:         c.ColumnGap,
		RowGap:            c.RowGap,
		PageGap:           c.PageGap,
		PaddingHorizontal: c.PaddingHorizontal,
		PaddingVertical:   c.PaddingVertical,
		Viewport:          viewport,
	}
}

func (c Config) AutoScrollDelay() time.Duration {
	return time.Duration(c.AutoScrollDelayMS) * time.Millisecond
}

func (c Config) LongPress() time.Duration {
	return time.Duration(c.LongPressMS) * time.Millisecond
}

func (c Config) Animation() time.Duration {
	return time.Duration(c.AnimationMS) * time.Millisecond
}

// Colors returns a fresh color source for the configured palette and seed.
func (c Config) Colors() pagergrid.ColorSource {
	if c.Palette == PaletteNamed {
		return pagergrid.NewNamedColors(c.Seed)
	}
	return pagergrid.NewRandomColors(c.Seed)
}

// Shortcuts builds the configured number of items.
func (c Config) Shortcuts() []pagergrid.ShortcutItem {
	return pagergrid.NewShortcuts(c.ItemCount, c.Colors())
}
