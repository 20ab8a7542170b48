package tui

import (
	"fmt"
	"io"
	"strings"

	"photo-gallery/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// entryCardDelegate renders grid entries as bordered cards. Large entries get
// an extra line so the featured photograph stands out.
type entryCardDelegate struct {
	normalCard   lipgloss.Style
	selectedCard lipgloss.Style

	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
}

func newEntryCardDelegate() entryCardDelegate {
	base := lipgloss.NewStyle().
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)

	selected := base.BorderForeground(colorSelectedBorder)

	return entryCardDelegate{
		normalCard:   base,
		selectedCard: selected,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		metaStyle:    lipgloss.NewStyle().Foreground(ac("238", "250")),
	}
}

func (d entryCardDelegate) Height() int  { return 5 } // 3 inner lines + border top/bottom
func (d entryCardDelegate) Spacing() int { return 1 }
func (d entryCardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d entryCardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	totalW := m.Width()
	if totalW < 12 {
		fmt.Fprint(w, "")
		return
	}
	it, ok := item.(entryItem)
	if !ok {
		return
	}

	card := d.normalCard
	if index == m.Index() {
		card = d.selectedCard
	}
	innerW := totalW - card.GetHorizontalFrameSize()
	if innerW < 1 {
		innerW = 1
	}
	card = card.Width(innerW)

	title := strings.TrimSpace(it.entry.Title)
	if title == "" {
		title = fmt.Sprintf("#%d", it.entry.ID)
	}
	if index == m.Index() {
		title = withIcon(model.IconZoomIn, title)
	}

	desc := strings.TrimSpace(it.entry.Description)
	meta := it.Description()
	if it.entry.SizeHint == model.SizeLarge {
		meta = withIcon(model.IconHeart, meta)
	}

	lines := []string{
		d.titleStyle.Render(truncate(title, innerW)),
		truncate(desc, innerW),
		d.metaStyle.Render(truncate(meta, innerW)),
	}
	fmt.Fprint(w, card.Render(strings.Join(lines, "\n")))
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, w-1) + "…"
}
