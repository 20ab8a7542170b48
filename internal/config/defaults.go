package config

import (
	"strings"
	"time"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "gallery.yaml"

var defaultAbout = strings.TrimSpace(`
This gallery is a collection of the best photographic work, selected over
many years of creative practice. Every photograph carries its own story and
emotion.

We strive for perfection in every frame, using modern equipment and advanced
image processing techniques.
`)

func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Brand:   "GALLERY",
			Title:   "Photo Gallery",
			Tagline: "A collection of the best work. Every frame is a story frozen in time. Step into the world of visual art.",
			CTA:     "View works",
			About:   defaultAbout,
			Stats: []Stat{
				{Value: "150+", Label: "Projects"},
				{Value: "50+", Label: "Clients"},
				{Value: "10+", Label: "Years of experience"},
			},
			Copyright: "© 2024 Gallery. All rights reserved.",
			EmptyText: "No works in this category",
		},
		TUI: TUIConfig{
			Theme:   "auto",
			Glyphs:  "unicode",
			Restore: true,
		},
		Web: WebConfig{
			Addr:        "127.0.0.1:3335",
			CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
			SessionTTL:  30 * time.Minute,
			Open:        false,
		},
		WebTUI: WebTUIConfig{
			Addr: "127.0.0.1:3334",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
