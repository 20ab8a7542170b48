package tui

import (
	"fmt"
	"strings"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}

	page := m.viewPage(w, h)
	switch {
	case m.ctrl.IsOpen():
		return overlayCenter(dimBackground(page), m.viewLightbox(w), w, h)
	case m.menuOpen:
		return overlayCenter(page, m.viewMenu(), w, h)
	}
	return page
}

func (m appModel) viewPage(w, h int) string {
	var body string
	if m.section == sectionAbout {
		body = m.about.View()
	} else if len(m.grid.Items()) == 0 {
		body = m.viewEmpty(w - 4)
	} else {
		body = m.grid.View()
	}

	top := strings.Join([]string{
		m.viewHeader(w),
		"",
		m.viewHero(w),
		"",
		m.viewFilterBar(w),
		"",
	}, "\n")
	bottom := m.viewFooter(w)

	bodyH := h - lipgloss.Height(top) - lipgloss.Height(bottom)
	if bodyH < 0 {
		bodyH = 0
	}
	body = lipgloss.NewStyle().PaddingLeft(2).Render(body)
	return normalizePane(top+"\n"+normalizePane(body, w, bodyH)+"\n"+bottom, w, h)
}

func (m appModel) viewHeader(w int) string {
	brand := strings.TrimSpace(m.site.Brand)
	if brand == "" {
		brand = "GALLERY"
	}
	left := styleAccent().Render(withIcon(model.IconCamera, brand))

	nav := make([]string, 0, 3)
	for _, s := range []section{sectionGallery, sectionAbout} {
		label := strings.ToUpper(s.String()[:1]) + s.String()[1:]
		if s == m.section {
			nav = append(nav, lipgloss.NewStyle().Bold(true).Underline(true).Render(label))
		} else {
			nav = append(nav, styleMuted().Render(label))
		}
	}
	nav = append(nav, withIcon(model.IconMenu, ""))
	right := strings.Join(nav, "  ")

	gap := w - 2 - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right + " "
}

func (m appModel) viewHero(w int) string {
	title := lipgloss.NewStyle().Bold(true).Render(m.site.Title)
	sub := styleMuted().Render(m.site.Tagline)
	if cta := strings.TrimSpace(m.site.CTA); cta != "" {
		sub += "  " + styleAccent().Render(withIcon(model.IconChevronRight, cta))
	}
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(title + "\n" + sub)
}

func (m appModel) viewFilterBar(w int) string {
	counts := gallery.CountCategories(m.defs, m.ctrl.Catalog())
	active := lipgloss.NewStyle().
		Foreground(colorAccentFg).
		Background(colorAccent).
		Bold(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Padding(0, 1)

	chips := make([]string, 0, len(counts))
	for i, c := range counts {
		label := fmt.Sprintf("%s %d", withIcon(c.Icon, c.Label), c.Count)
		if i == m.catIdx {
			chips = append(chips, active.Render(label))
		} else {
			chips = append(chips, inactive.Render(label))
		}
	}
	bar := strings.Join(chips, " ")
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(bar)
}

func (m appModel) viewEmpty(w int) string {
	msg := strings.TrimSpace(m.site.EmptyText)
	if msg == "" {
		msg = "No works in this category yet."
	}
	return lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Foreground(colorChromeSubtleFg).
		Render(withIcon(model.IconGrid, msg))
}

func (m appModel) viewFooter(w int) string {
	var helpLine string
	if m.ctrl.IsOpen() {
		helpLine = m.help.View(lightboxHelpMap{m.keys})
	} else {
		helpLine = m.help.View(m.keys)
	}
	social := withIcon(model.IconShare, "") + " " + withIcon(model.IconDownload, "")
	copyright := styleMuted().Render(m.site.Copyright)

	gap := w - 2 - lipgloss.Width(copyright) - lipgloss.Width(social)
	if gap < 1 {
		gap = 1
	}
	return " " + helpLine + "\n " + copyright + strings.Repeat(" ", gap) + social
}

func (m appModel) viewLightbox(w int) string {
	sel, ok := m.ctrl.Selected()
	if !ok {
		return ""
	}
	boxW := 64
	if boxW > w-4 {
		boxW = w - 4
	}
	if boxW < 20 {
		boxW = 20
	}
	innerW := boxW - 4

	closeHint := styleMuted().Render(withIcon(model.IconClose, "esc"))
	title := lipgloss.NewStyle().Bold(true).Render(truncate(sel.Title, innerW-lipgloss.Width(closeHint)-1))
	gap := innerW - lipgloss.Width(title) - lipgloss.Width(closeHint)
	if gap < 1 {
		gap = 1
	}

	label := m.labels[sel.Category]
	if label == "" {
		label = string(sel.Category)
	}

	lines := []string{
		title + strings.Repeat(" ", gap) + closeHint,
		styleMuted().Render(label + " " + glyphBullet() + " " + sizeLabel(sel.SizeHint)),
		strings.Repeat(glyphHRule(), innerW),
	}
	if d := strings.TrimSpace(sel.Description); d != "" {
		lines = append(lines, lipgloss.NewStyle().Width(innerW).Render(d), "")
	}
	lines = append(lines, styleMuted().Render(truncate(sel.ImageRef, innerW)), "", m.viewLightboxNav(innerW))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSelectedBorder).
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Padding(0, 1).
		Width(boxW - 2)
	return box.Render(strings.Join(lines, "\n"))
}

// viewLightboxNav shows prev/next only where navigation is possible.
func (m appModel) viewLightboxNav(w int) string {
	prev, next := "", ""
	if m.ctrl.HasPrev() {
		prev = withIcon(model.IconChevronLeft, "prev")
	}
	if m.ctrl.HasNext() {
		next = "next " + mustGlyph(model.IconChevronRight)
	}
	pos := fmt.Sprintf("%d / %d", m.ctrl.CurrentIndex()+1, len(m.ctrl.FilteredEntries()))

	left := lipgloss.NewStyle().Width(w / 3).Align(lipgloss.Left).Render(prev)
	mid := lipgloss.NewStyle().Width(w - 2*(w/3)).Align(lipgloss.Center).Render(pos)
	right := lipgloss.NewStyle().Width(w / 3).Align(lipgloss.Right).Render(next)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}

func (m appModel) viewMenu() string {
	lines := []string{lipgloss.NewStyle().Bold(true).Render(withIcon(model.IconMenu, "Menu")), ""}
	for i, s := range []section{sectionGallery, sectionAbout} {
		marker := "  "
		if s == m.section {
			marker = glyphBullet() + " "
		}
		lines = append(lines, fmt.Sprintf("%s%d  %s", marker, i+1, s))
	}
	lines = append(lines, "", styleMuted().Render("esc to close"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) aboutContent(w int) string {
	about := renderMarkdown(m.site.About, w)
	if len(m.site.Stats) == 0 {
		return about
	}
	cols := make([]string, 0, len(m.site.Stats))
	for _, st := range m.site.Stats {
		cols = append(cols, lipgloss.NewStyle().Width(16).Align(lipgloss.Center).Render(
			styleAccent().Render(st.Value)+"\n"+styleMuted().Render(st.Label),
		))
	}
	return about + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func mustGlyph(icon model.Icon) string {
	g, _ := glyphFor(icon)
	return g
}
