package tui

import (
	"strings"
	"testing"

	"photo-gallery/internal/config"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"
	"photo-gallery/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

func newTestApp(t *testing.T, opts Options) appModel {
	t.Helper()
	if opts.Catalog == nil {
		opts.Catalog = gallery.DefaultCatalog()
	}
	if opts.Site.Title == "" {
		opts.Site = config.DefaultConfig().Site
	}
	m := newAppModel(opts)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return mm.(appModel)
}

func press(t *testing.T, m appModel, msgs ...tea.KeyMsg) appModel {
	t.Helper()
	for _, msg := range msgs {
		mm, _ := m.Update(msg)
		m = mm.(appModel)
	}
	return m
}

var (
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestApp_OpenWalkAndClose(t *testing.T) {
	m := newTestApp(t, Options{})

	m = press(t, m, keyEnter)
	if sel, ok := m.ctrl.Selected(); !ok || sel.ID != 1 {
		t.Fatalf("enter should open the first entry, got %+v ok=%v", sel, ok)
	}
	if !m.lock.Held() {
		t.Fatalf("open lightbox must hold the scroll lock")
	}

	m = press(t, m, keyRight, keyRight, keyRight)
	if sel, _ := m.ctrl.Selected(); sel.ID != 3 {
		t.Fatalf("right x3 from id1 should stop at id3, got %d", sel.ID)
	}
	if m.catIdx != 0 {
		t.Fatalf("arrows inside the lightbox must not change category")
	}

	m = press(t, m, keyLeft)
	if sel, _ := m.ctrl.Selected(); sel.ID != 2 {
		t.Fatalf("left should move back to id2, got %d", sel.ID)
	}

	m = press(t, m, keyEsc)
	if m.ctrl.IsOpen() || m.lock.Held() {
		t.Fatalf("esc should close and release the lock")
	}
	if e, _ := selectedEntry(m.grid); e.ID != 2 {
		t.Fatalf("grid cursor should follow the lightbox, got %d", e.ID)
	}
}

func TestApp_GridIgnoresKeysWhileLocked(t *testing.T) {
	m := newTestApp(t, Options{})
	m = press(t, m, keyEnter, keyDown, keyDown, runes("q"), keyTab)

	if !m.ctrl.IsOpen() {
		t.Fatalf("unbound keys must not close the lightbox")
	}
	if e, _ := selectedEntry(m.grid); e.ID != 1 {
		t.Fatalf("grid moved behind the lightbox to %d", e.ID)
	}
	if m.section != sectionGallery {
		t.Fatalf("tab must be ignored while the lightbox is open")
	}
}

func TestApp_CategoryChange(t *testing.T) {
	m := newTestApp(t, Options{})

	m = press(t, m, keyRight)
	if got := m.ctrl.ActiveCategory(); got != model.CategoryPortrait {
		t.Fatalf("first right should select portrait, got %q", got)
	}
	m = press(t, m, keyRight)
	if got := m.ctrl.ActiveCategory(); got != model.CategoryLandscape {
		t.Fatalf("second right should select landscape, got %q", got)
	}
	if n := len(m.grid.Items()); n != 1 {
		t.Fatalf("landscape grid should list 1 entry, got %d", n)
	}

	// Open id2 under landscape, then widen the filter: the lightbox stays open
	// and the grid cursor follows it.
	m = press(t, m, keyEnter)
	m.setCategory(0)
	if !m.ctrl.IsOpen() {
		t.Fatalf("id2 is still visible under all; lightbox should stay open")
	}
	if e, _ := selectedEntry(m.grid); e.ID != 2 {
		t.Fatalf("cursor should stay on id2 after widening, got %d", e.ID)
	}
	m = press(t, m, keyEsc)

	m = press(t, m, keyLeft)
	if m.catIdx != 0 {
		t.Fatalf("left on the first category must not wrap")
	}
}

func TestApp_EmptyCategoryShowsEmptyState(t *testing.T) {
	catalog := []model.GalleryEntry{{ID: 5, Category: model.CategoryPortrait, Title: "Solo", ImageRef: "solo.jpg"}}
	m := newTestApp(t, Options{Catalog: catalog})
	m = press(t, m, keyRight, keyRight) // landscape
	if len(m.grid.Items()) != 0 {
		t.Fatalf("expected empty grid")
	}
	view := xansi.Strip(m.View())
	if !strings.Contains(view, m.site.EmptyText) {
		t.Fatalf("empty state text missing from view")
	}
	m = press(t, m, keyEnter)
	if m.ctrl.IsOpen() {
		t.Fatalf("enter on an empty grid must not open")
	}
}

func TestApp_ViewShowsLightbox(t *testing.T) {
	m := newTestApp(t, Options{})
	m = press(t, m, keyEnter, keyRight)

	view := xansi.Strip(m.View())
	sel, _ := m.ctrl.Selected()
	for _, want := range []string{sel.Title, "2 / 3", "‹ prev", "next ›"} {
		if !strings.Contains(view, want) {
			t.Fatalf("lightbox view missing %q", want)
		}
	}
	if lines := strings.Split(m.View(), "\n"); len(lines) != 40 {
		t.Fatalf("view should fill the terminal height, got %d lines", len(lines))
	}

	m = press(t, m, keyRight)
	view = xansi.Strip(m.View())
	if !strings.Contains(view, "3 / 3") || strings.Contains(view, "next ›") {
		t.Fatalf("last entry should hide the next control")
	}
}

func TestApp_MenuAndSections(t *testing.T) {
	m := newTestApp(t, Options{})

	m = press(t, m, runes("m"))
	if !m.menuOpen {
		t.Fatalf("m should open the menu")
	}
	m = press(t, m, runes("a"))
	if m.menuOpen || m.section != sectionAbout {
		t.Fatalf("menu should switch to about and close")
	}
	m = press(t, m, keyEnter)
	if m.ctrl.IsOpen() {
		t.Fatalf("enter on the about section must not open the lightbox")
	}
	m = press(t, m, keyTab)
	if m.section != sectionGallery {
		t.Fatalf("tab should return to the gallery")
	}
}

func TestApp_QuitTearsDown(t *testing.T) {
	m := newTestApp(t, Options{})
	m = press(t, m, keyEnter)

	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = mm.(appModel)
	if cmd == nil {
		t.Fatalf("ctrl+c should quit")
	}
	if m.lock.Held() {
		t.Fatalf("quit must release the scroll lock")
	}
	if a, r := m.lock.Counts(); a != r {
		t.Fatalf("lock counts unbalanced: (%d, %d)", a, r)
	}
}

func TestApp_RestoresSavedState(t *testing.T) {
	st := &store.Store{Dir: t.TempDir()}
	opts := Options{Store: st, TUI: config.TUIConfig{Restore: true}}

	m := newTestApp(t, opts)
	m = press(t, m, keyRight, keyRight, keyRight, keyTab) // architecture, about
	press(t, m, runes("q"))

	m2 := newTestApp(t, opts)
	if got := m2.ctrl.ActiveCategory(); got != model.CategoryArchitecture {
		t.Fatalf("restored category = %q, want architecture", got)
	}
	if m2.section != sectionAbout {
		t.Fatalf("restored section = %v, want about", m2.section)
	}
	if m2.ctrl.IsOpen() {
		t.Fatalf("restore must never reopen the lightbox")
	}
}
