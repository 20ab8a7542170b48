package tui

import (
	"strings"
	"sync"

	"photo-gallery/internal/model"
)

// Terminal apps can't draw the site's vector icons. Instead, each icon maps to
// a glyph in either a Unicode or an ASCII set, chosen to suit the user's font.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

type iconGlyph struct {
	unicode string
	ascii   string
}

// iconGlyphs is indexed by model.Icon; IconNone has no glyph.
var iconGlyphs = map[model.Icon]iconGlyph{
	model.IconClose:        {unicode: "✕", ascii: "x"},
	model.IconZoomIn:       {unicode: "⊕", ascii: "(+)"},
	model.IconChevronLeft:  {unicode: "‹", ascii: "<"},
	model.IconChevronRight: {unicode: "›", ascii: ">"},
	model.IconCamera:       {unicode: "◉", ascii: "[o]"},
	model.IconGrid:         {unicode: "▦", ascii: "#"},
	model.IconHeart:        {unicode: "♥", ascii: "<3"},
	model.IconShare:        {unicode: "⇪", ascii: "^"},
	model.IconDownload:     {unicode: "⤓", ascii: "v"},
	model.IconMenu:         {unicode: "☰", ascii: "="},
}

// glyphFor returns the glyph for icon in the current set. Icons without a
// glyph render nothing.
func glyphFor(icon model.Icon) (string, bool) {
	g, ok := iconGlyphs[icon]
	if !ok || !icon.Valid() {
		return "", false
	}
	if glyphs() == glyphSetASCII {
		return g.ascii, true
	}
	return g.unicode, true
}

// withIcon prefixes label with icon's glyph when there is one.
func withIcon(icon model.Icon, label string) string {
	g, ok := glyphFor(icon)
	if !ok {
		return label
	}
	if label == "" {
		return g
	}
	return g + " " + label
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
