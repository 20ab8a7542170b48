package config

import "time"

// Config is the top-level gallery configuration, corresponding to gallery.yaml.
type Config struct {
	// Catalog is the path of a catalog file (YAML or JSON). Empty uses the built-in catalog.
	Catalog string       `yaml:"catalog" koanf:"catalog"`
	Site    SiteConfig   `yaml:"site" koanf:"site"`
	TUI     TUIConfig    `yaml:"tui" koanf:"tui"`
	Web     WebConfig    `yaml:"web" koanf:"web"`
	WebTUI  WebTUIConfig `yaml:"webtui" koanf:"webtui"`
	Log     LogConfig    `yaml:"log" koanf:"log"`
}

// SiteConfig holds the static copy shown around the gallery.
type SiteConfig struct {
	Brand     string `yaml:"brand" koanf:"brand"`
	Title     string `yaml:"title" koanf:"title"`
	Tagline   string `yaml:"tagline" koanf:"tagline"`
	CTA       string `yaml:"cta" koanf:"cta"`
	About     string `yaml:"about" koanf:"about"` // markdown
	Stats     []Stat `yaml:"stats" koanf:"stats"`
	Copyright string `yaml:"copyright" koanf:"copyright"`
	EmptyText string `yaml:"empty_text" koanf:"empty_text"`
}

type Stat struct {
	Value string `yaml:"value" koanf:"value"`
	Label string `yaml:"label" koanf:"label"`
}

type TUIConfig struct {
	// Theme is one of auto|light|dark.
	Theme string `yaml:"theme" koanf:"theme"`
	// Glyphs is one of unicode|ascii.
	Glyphs string `yaml:"glyphs" koanf:"glyphs"`
	// Restore reopens the last category/section on launch.
	Restore bool `yaml:"restore" koanf:"restore"`
}

type WebConfig struct {
	Addr        string        `yaml:"addr" koanf:"addr"`
	CORSOrigins []string      `yaml:"cors_origins" koanf:"cors_origins"`
	SessionTTL  time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	Open        bool          `yaml:"open" koanf:"open"`
}

type WebTUIConfig struct {
	Addr string `yaml:"addr" koanf:"addr"`
}

type LogConfig struct {
	// Level is one of debug|info|warn|error.
	Level string `yaml:"level" koanf:"level"`
	// Format is one of text|json.
	Format string `yaml:"format" koanf:"format"`
	// File redirects logs to a file. Interactive TUI runs discard logs unless this is set.
	File string `yaml:"file" koanf:"file"`
}
