package artistloader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const configAppDir = "artistloader"

// Duration wraps time.Duration with TOML-friendly string parsing.
// Supports standard Go duration strings: "300ms", "1s", "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the TOML configuration.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Strength StrengthConfig `toml:"strength"`
	Gesture  GestureConfig  `toml:"gesture"`
	Preview  PreviewConfig  `toml:"preview"`
	Node     NodeConfig     `toml:"node"`
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
}

// CatalogConfig locates the artist CSV and its preview images.
type CatalogConfig struct {
	Path      string `toml:"path"`
	ImagesDir string `toml:"images_dir"`
}

// StrengthConfig bounds and steps the strength control.
type StrengthConfig struct {
	Min             float64 `toml:"min"`
	Max             float64 `toml:"max"`
	Step            float64 `toml:"step"`
	DragSensitivity float64 `toml:"drag_sensitivity"`
}

// GestureConfig tunes tap versus drag.
type GestureConfig struct {
	DragThreshold float64  `toml:"drag_threshold"`
	TapDuration   Duration `toml:"tap_duration"`
}

// PreviewConfig tunes the hover preview card.
type PreviewConfig struct {
	ShowDelay Duration `toml:"show_delay"`
	HideDelay Duration `toml:"hide_delay"`
	MaxSize   int      `toml:"max_size"`
}

// NodeConfig sizes new nodes.
type NodeConfig struct {
	Width     float64 `toml:"width"`
	MinHeight float64 `toml:"min_height"`
}

// WindowConfig sizes the demo window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// LogConfig sets logging.
type LogConfig struct {
	Level string `toml:"level"`
	Debug bool   `toml:"debug"`
}

// LoadConfig reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/artistloader/config.toml
//  2. ~/.config/artistloader/config.toml
//
// If no file exists, returns DefaultConfig().
func LoadConfig() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadConfigFile(p)
		}
	}
	return DefaultConfig(), nil
}

// LoadConfigFile reads configuration from a specific file path. A missing
// file yields DefaultConfig().
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("artistloader: open config: %w", err)
	}
	defer f.Close()
	cfg, err := LoadConfigReader(f)
	if err != nil {
		return nil, fmt.Errorf("artistloader: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigReader decodes TOML over DefaultConfig() and validates it.
func LoadConfigReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(xdgConfigHome(home), configAppDir)
	return &Config{
		Catalog: CatalogConfig{
			Path:      filepath.Join(dataDir, "artists.csv"),
			ImagesDir: filepath.Join(dataDir, "images"),
		},
		Strength: StrengthConfig{
			Min:             DefaultStrengthRange.Min,
			Max:             DefaultStrengthRange.Max,
			Step:            defaultStrengthStep,
			DragSensitivity: defaultDragSensitivity,
		},
		Gesture: GestureConfig{
			DragThreshold: defaultDragThreshold,
			TapDuration:   Duration{defaultTapDuration},
		},
		Preview: PreviewConfig{
			ShowDelay: Duration{defaultPreviewShowDelay},
			HideDelay: Duration{defaultPreviewHideDelay},
			MaxSize:   defaultPreviewMaxSize,
		},
		Node: NodeConfig{
			Width:     defaultNodeWidth,
			MinHeight: defaultNodeMinHeight,
		},
		Window: WindowConfig{
			Title:  defaultNodeTitle,
			Width:  1280,
			Height: 800,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings the widgets cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if !(StrengthRange{Min: c.Strength.Min, Max: c.Strength.Max}).Valid() {
		errs = append(errs, fmt.Errorf("strength: min %v must be below max %v", c.Strength.Min, c.Strength.Max))
	}
	if c.Strength.Step <= 0 {
		errs = append(errs, fmt.Errorf("strength: step must be positive, got %v", c.Strength.Step))
	}
	if c.Strength.DragSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("strength: drag_sensitivity must be positive, got %v", c.Strength.DragSensitivity))
	}
	if c.Gesture.DragThreshold < 0 {
		errs = append(errs, fmt.Errorf("gesture: drag_threshold must not be negative, got %v", c.Gesture.DragThreshold))
	}
	if c.Node.Width < minNodeWidth {
		errs = append(errs, fmt.Errorf("node: width must be at least %v, got %v", minNodeWidth, c.Node.Width))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// ListOptions converts the strength and gesture sections.
func (c *Config) ListOptions() ListOptions {
	return ListOptions{
		Range:           StrengthRange{Min: c.Strength.Min, Max: c.Strength.Max},
		Step:            c.Strength.Step,
		DragSensitivity: c.Strength.DragSensitivity,
		DragThreshold:   c.Gesture.DragThreshold,
		TapDuration:     c.Gesture.TapDuration.Duration,
	}.withDefaults()
}

// Apply configures a scene: list options, node size, preview timing and
// image loading, and debug mode.
func (c *Config) Apply(s *Scene) {
	s.SetListOptions(c.ListOptions())
	s.SetNodeSize(c.Node.Width, c.Node.MinHeight)
	s.preview.ShowDelay = c.Preview.ShowDelay.Duration
	s.preview.HideDelay = c.Preview.HideDelay.Duration
	s.SetImageLoader(DirImageLoader{Dir: c.Catalog.ImagesDir, MaxSize: c.Preview.MaxSize})
	s.SetViewport(float64(c.Window.Width), float64(c.Window.Height))
	if c.Log.Debug {
		s.SetDebugMode(true)
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, configAppDir, "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, configAppDir, "config.toml"))
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
