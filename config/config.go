package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	DefaultBaseName      = "screenshot"
	DefaultBackend       = "screenshot"
	DefaultSettleDelayMs = 500
	DefaultDoubleTapMs   = 300
	DefaultHandleSize    = 30.0
	DefaultToolbarX      = 100
	DefaultToolbarY      = 100
	DefaultThumbCache    = 16

	maxSettleDelayMs = 5000
	maxDoubleTapMs   = 2000
	maxHandleSize    = 200.0
	maxThumbCache    = 256
)

// Config holds runtime configuration for capture, export and the overlay.
// Fields are loaded from a JSON file; missing fields keep their defaults.
type Config struct {
	Debug    bool `json:"debug"`
	DarkMode bool `json:"dark_mode"`

	// Export
	BaseName  string `json:"base_name"`
	OutputDir string `json:"output_dir"`
	PDFBundle bool   `json:"pdf_bundle"`

	// Capture
	CaptureBackend string `json:"capture_backend"`
	SettleDelayMs  int    `json:"settle_delay_ms"`

	// Gestures
	DoubleTapMs int     `json:"double_tap_ms"`
	HandleSize  float64 `json:"handle_size"`

	// Toolbar position persistence
	ToolbarX int `json:"toolbar_x"`
	ToolbarY int `json:"toolbar_y"`

	ThumbnailCache int `json:"thumbnail_cache"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseName:       DefaultBaseName,
		OutputDir:      DefaultOutputDir(),
		CaptureBackend: DefaultBackend,
		SettleDelayMs:  DefaultSettleDelayMs,
		DoubleTapMs:    DefaultDoubleTapMs,
		HandleSize:     DefaultHandleSize,
		ToolbarX:       DefaultToolbarX,
		ToolbarY:       DefaultToolbarY,
		ThumbnailCache: DefaultThumbCache,
	}
}

// DefaultOutputDir is the Screenshots folder under the user's pictures
// directory.
func DefaultOutputDir() string {
	pictures := xdg.UserDirs.Pictures
	if pictures == "" {
		pictures = filepath.Join(xdg.Home, "Pictures")
	}
	return filepath.Join(pictures, "Screenshots")
}

// DefaultPath returns the config file location under the XDG config home,
// creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("sshot-go", "config.json"))
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.BaseName = strings.TrimSpace(c.BaseName)
	if c.BaseName == "" {
		c.BaseName = DefaultBaseName
	}
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir()
	}
	c.CaptureBackend = strings.ToLower(strings.TrimSpace(c.CaptureBackend))
	if c.CaptureBackend == "" {
		c.CaptureBackend = DefaultBackend
	}
	if c.SettleDelayMs <= 0 {
		c.SettleDelayMs = DefaultSettleDelayMs
	}
	if c.SettleDelayMs > maxSettleDelayMs {
		c.SettleDelayMs = maxSettleDelayMs
	}
	if c.DoubleTapMs <= 0 {
		c.DoubleTapMs = DefaultDoubleTapMs
	}
	if c.DoubleTapMs > maxDoubleTapMs {
		c.DoubleTapMs = maxDoubleTapMs
	}
	if c.HandleSize <= 0 {
		c.HandleSize = DefaultHandleSize
	}
	if c.HandleSize > maxHandleSize {
		c.HandleSize = maxHandleSize
	}
	if c.ToolbarX < 0 {
		c.ToolbarX = 0
	}
	if c.ToolbarY < 0 {
		c.ToolbarY = 0
	}
	if c.ThumbnailCache <= 0 {
		c.ThumbnailCache = DefaultThumbCache
	}
	if c.ThumbnailCache > maxThumbCache {
		c.ThumbnailCache = maxThumbCache
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
