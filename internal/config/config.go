package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: GALLERY_WEB__ADDR -> web.addr.
const EnvPrefix = "GALLERY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GALLERY_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) normalize() {
	c.Catalog = strings.TrimSpace(c.Catalog)
	c.TUI.Theme = strings.ToLower(strings.TrimSpace(c.TUI.Theme))
	c.TUI.Glyphs = strings.ToLower(strings.TrimSpace(c.TUI.Glyphs))
	c.Web.Addr = strings.TrimSpace(c.Web.Addr)
	c.WebTUI.Addr = strings.TrimSpace(c.WebTUI.Addr)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	switch c.TUI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid tui.theme %q: must be one of auto, light, dark", c.TUI.Theme)
	}
	switch c.TUI.Glyphs {
	case "", "unicode", "utf8", "ascii":
	default:
		return fmt.Errorf("invalid tui.glyphs %q: must be one of unicode, ascii", c.TUI.Glyphs)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be one of text, json", c.Log.Format)
	}
	if c.Web.SessionTTL < 0 {
		return fmt.Errorf("web.session_ttl must be non-negative")
	}
	return nil
}

// SlogLevel maps Level onto a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch l.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", l.Level)
	}
}
