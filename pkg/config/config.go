// Package config handles loading and saving threadline configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/threadline/config.yaml
//   - State:  ~/.local/state/threadline/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultMode   string `yaml:"default_mode,omitempty"`   // inbox or archive
	UnreadOnly    bool   `yaml:"unread_only,omitempty"`    // start with the unread filter active
	ShowBanners   bool   `yaml:"show_banners,omitempty"`   // advisory banners above the list
	UnreadBadge   string `yaml:"unread_badge,omitempty"`   // glyph for the unread indicator
	RelativeTimes bool   `yaml:"relative_times,omitempty"` // "2h ago" instead of absolute timestamps
}

// WatchConfig controls store-file watching.
type WatchConfig struct {
	DebounceMS int  `yaml:"debounce_ms,omitempty"` // change debounce window
	PollMS     int  `yaml:"poll_ms,omitempty"`     // polling interval in fallback mode
	ForcePoll  bool `yaml:"force_poll,omitempty"`  // skip fsnotify entirely
}

// Config is the top-level configuration for threadline.
type Config struct {
	DataDir string      `yaml:"data_dir,omitempty"` // overrides discovery root
	UI      UIConfig    `yaml:"ui,omitempty"`
	Watch   WatchConfig `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			DefaultMode:   "inbox",
			ShowBanners:   true,
			UnreadBadge:   "●",
			RelativeTimes: true,
		},
		Watch: WatchConfig{
			DebounceMS: 200,
			PollMS:     2000,
		},
	}
}

// ConfigDir returns the XDG config directory for threadline.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "threadline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "threadline")
}

// StateDir returns the XDG state directory for threadline.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "threadline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "threadline")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	if cfg.Watch.DebounceMS <= 0 {
		cfg.Watch.DebounceMS = DefaultConfig().Watch.DebounceMS
	}
	if cfg.Watch.PollMS <= 0 {
		cfg.Watch.PollMS = DefaultConfig().Watch.PollMS
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
