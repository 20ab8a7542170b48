package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Catalog != "" {
		t.Errorf("expected built-in catalog by default, got %q", cfg.Catalog)
	}
	if cfg.TUI.Theme != "auto" {
		t.Errorf("expected default theme auto, got %q", cfg.TUI.Theme)
	}
	if len(cfg.Site.Stats) != 3 {
		t.Errorf("expected 3 default stats, got %d", len(cfg.Site.Stats))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.yaml")

	original := DefaultConfig()
	original.Catalog = "photos.yaml"
	original.Site.Title = "Fjords"
	original.TUI.Glyphs = "ascii"
	original.Web.SessionTTL = 5 * time.Minute
	original.Web.CORSOrigins = []string{"https://example.com"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Catalog != original.Catalog {
		t.Errorf("catalog: got %q, want %q", loaded.Catalog, original.Catalog)
	}
	if loaded.Site.Title != "Fjords" {
		t.Errorf("site.title: got %q", loaded.Site.Title)
	}
	if loaded.TUI.Glyphs != "ascii" {
		t.Errorf("tui.glyphs: got %q", loaded.TUI.Glyphs)
	}
	if loaded.Web.SessionTTL != 5*time.Minute {
		t.Errorf("web.session_ttl: got %v", loaded.Web.SessionTTL)
	}
	if len(loaded.Web.CORSOrigins) != 1 || loaded.Web.CORSOrigins[0] != "https://example.com" {
		t.Errorf("web.cors_origins: got %v", loaded.Web.CORSOrigins)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Web.Addr != DefaultConfig().Web.Addr {
		t.Errorf("expected default web addr, got %q", cfg.Web.Addr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.yaml")
	if err := os.WriteFile(path, []byte("web:\n  addr: 0.0.0.0:9000\nlog:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GALLERY_WEB__ADDR", ":7000")
	t.Setenv("GALLERY_CATALOG", " mine.yaml ")
	t.Setenv("GALLERY_TUI__THEME", "DARK")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Web.Addr != ":7000" {
		t.Errorf("env should override file: got %q", cfg.Web.Addr)
	}
	if cfg.Catalog != "mine.yaml" {
		t.Errorf("catalog: got %q", cfg.Catalog)
	}
	if cfg.TUI.Theme != "dark" {
		t.Errorf("theme: got %q", cfg.TUI.Theme)
	}
	lvl, err := cfg.Log.SlogLevel()
	if err != nil || lvl != slog.LevelWarn {
		t.Errorf("log level: got %v, %v", lvl, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "theme", mutate: func(c *Config) { c.TUI.Theme = "neon" }},
		{name: "glyphs", mutate: func(c *Config) { c.TUI.Glyphs = "emoji" }},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
		{name: "ttl", mutate: func(c *Config) { c.Web.SessionTTL = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
