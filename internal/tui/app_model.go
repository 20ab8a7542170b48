package tui

import (
	"log/slog"

	"photo-gallery/internal/config"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"
	"photo-gallery/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type section int

const (
	sectionGallery section = iota
	sectionAbout
)

func (s section) String() string {
	if s == sectionAbout {
		return "about"
	}
	return "gallery"
}

func parseSection(s string) section {
	if s == "about" {
		return sectionAbout
	}
	return sectionGallery
}

// Options configures one interactive session.
type Options struct {
	Catalog    []model.GalleryEntry
	Categories []model.CategoryDef
	Site       config.SiteConfig
	TUI        config.TUIConfig

	// Store persists the last category/section. Nil disables persistence.
	Store *store.Store
	// Log receives debug events. Nil discards them.
	Log *slog.Logger
}

type appModel struct {
	ctrl *gallery.Controller
	lock *gallery.Lock

	defs   []model.CategoryDef
	labels map[model.Category]string
	catIdx int

	grid  list.Model
	about viewport.Model
	help  help.Model
	keys  keyMap

	section  section
	menuOpen bool

	site  config.SiteConfig
	store *store.Store
	log   *slog.Logger

	width  int
	height int
}

func newAppModel(opts Options) appModel {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	catalog := opts.Catalog
	defs := opts.Categories
	if len(defs) == 0 {
		defs = gallery.DefaultCategories()
	}
	defs = gallery.CategoriesFor(defs, catalog)

	labels := make(map[model.Category]string, len(defs))
	for _, d := range defs {
		labels[d.ID] = d.Label
	}

	m := appModel{
		defs:   defs,
		labels: labels,
		help:   help.New(),
		keys:   newKeyMap(),
		about:  viewport.New(0, 0),
		site:   opts.Site,
		store:  opts.Store,
		log:    log,
	}
	m.lock = gallery.NewLock(func(locked bool) {
		log.Debug("scroll lock", "locked", locked)
	})
	m.ctrl = gallery.NewController(catalog, m.lock)
	m.grid = newGrid(entryItems(m.ctrl.FilteredEntries(), labels))

	if opts.TUI.Restore {
		m.restoreState()
	}
	return m
}

func (m *appModel) restoreState() {
	if m.store == nil {
		return
	}
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	m.section = parseSection(st.Section)
	if st.ActiveCategory != "" {
		for i, d := range m.defs {
			if d.ID == model.NormalizeCategory(st.ActiveCategory) {
				m.setCategory(i)
				break
			}
		}
	}
	if st.CursorEntryID != 0 {
		selectEntryID(&m.grid, st.CursorEntryID)
	}
}

func (m appModel) saveState() {
	if m.store == nil {
		return
	}
	st := &store.TUIState{
		ActiveCategory: string(m.ctrl.ActiveCategory()),
		Section:        m.section.String(),
	}
	if e, ok := selectedEntry(m.grid); ok {
		st.CursorEntryID = e.ID
	}
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.Warn("save tui state", "err", err)
	}
}

// setCategory applies the i-th filter and refreshes the grid. The controller
// decides whether an open lightbox survives the change.
func (m *appModel) setCategory(i int) {
	if i < 0 || i >= len(m.defs) {
		return
	}
	m.catIdx = i
	m.ctrl.SetActiveCategory(m.defs[i].ID)
	m.refreshGrid()
	m.log.Debug("filter", "category", m.defs[i].ID, "visible", len(m.grid.Items()))
}

func (m *appModel) refreshGrid() {
	cur, hadCur := selectedEntry(m.grid)
	m.grid.SetItems(entryItems(m.ctrl.FilteredEntries(), m.labels))
	if sel, ok := m.ctrl.Selected(); ok {
		selectEntryID(&m.grid, sel.ID)
	} else if !hadCur || !selectEntryID(&m.grid, cur.ID) {
		m.grid.Select(0)
	}
}

func (m appModel) Init() tea.Cmd { return nil }
