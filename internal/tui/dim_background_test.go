package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestDimBackground_StripsInnerANSIStyles(t *testing.T) {
	oldProfile := lipgloss.ColorProfile()
	oldBG := lipgloss.HasDarkBackground()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(oldProfile)
		lipgloss.SetHasDarkBackground(oldBG)
	})
	lipgloss.SetHasDarkBackground(true)

	// Give the inner content a strong color. If dimBackground does not strip ANSI
	// codes first, the inner style can override the scrim.
	in := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("HELLO")
	out := dimBackground(in)

	if !strings.Contains(out, "38;5;241") {
		t.Fatalf("expected dimmed foreground (38;5;241) in output; got %q", out)
	}
	if strings.Contains(out, "38;5;196") {
		t.Fatalf("expected inner foreground (38;5;196) to be stripped; got %q", out)
	}
}

func TestOverlayCenter_KeepsDimensions(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	out := overlayCenter(bg, "BOX\nBOX", 20, 10)

	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 20 {
			t.Fatalf("line %d width = %d, want 20", i, w)
		}
	}
	if lines[4] != "........BOX........." || lines[5] != "........BOX........." {
		t.Fatalf("box not centered: %q / %q", lines[4], lines[5])
	}
}
