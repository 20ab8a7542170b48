package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}

	return strings.Join(lines, "\n")
}

// dimBackground repaints content in the scrim color. Inner ANSI styles are
// stripped first so they cannot override the scrim.
func dimBackground(content string) string {
	plain := xansi.Strip(content)
	st := lipgloss.NewStyle().Foreground(colorScrimFg)
	lines := strings.Split(plain, "\n")
	for i, ln := range lines {
		if ln == "" {
			continue
		}
		lines[i] = st.Render(ln)
	}
	return strings.Join(lines, "\n")
}

// overlayCenter draws box centered on top of bg, which is width x height.
func overlayCenter(bg, box string, width, height int) string {
	bg = normalizePane(bg, width, height)
	bgLines := strings.Split(bg, "\n")
	boxLines := strings.Split(box, "\n")

	boxW := lipgloss.Width(box)
	if boxW > width {
		boxW = width
	}
	top := (height - len(boxLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - boxW) / 2
	if left < 0 {
		left = 0
	}

	for i, bl := range boxLines {
		row := top + i
		if row >= len(bgLines) {
			break
		}
		bl = normalizePane(bl, boxW, 1)
		line := bgLines[row]
		bgLines[row] = xansi.Cut(line, 0, left) + bl + xansi.Cut(line, left+boxW, width)
	}
	return strings.Join(bgLines, "\n")
}
