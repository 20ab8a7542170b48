package web

import (
	"html/template"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"photo-gallery/internal/config"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"
)

type pageVM struct {
	Site        config.SiteConfig
	About       template.HTML
	DatastarURL string
	Main        mainVM
}

// mainVM is everything inside #gallery-main, the element patched by actions.
type mainVM struct {
	Site         config.SiteConfig
	Categories   []categoryVM
	Entries      []entryVM
	EmptyText    string
	Lightbox     *lightboxVM
	MenuOpen     bool
	ScrollLocked bool
}

type categoryVM struct {
	ID     string
	Label  string
	Icon   string // empty when the category has no icon
	Count  int
	Active bool
}

type entryVM struct {
	ID            int
	Title         string
	Description   string
	Category      string
	CategoryLabel string
	Src           string
	Size          string
}

type lightboxVM struct {
	entryVM
	Position int // 1-based
	Total    int
	HasPrev  bool
	HasNext  bool
}

// imageURL links absolute refs directly. Relative refs are served by entry
// id from /media/, so the ref itself never has to survive URL cleaning.
func imageURL(e model.GalleryEntry) string {
	ref := strings.TrimSpace(e.ImageRef)
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	name := path.Base(filepath.ToSlash(ref))
	if name == "." || name == "/" || name == ".." {
		name = "image"
	}
	return "/media/" + strconv.Itoa(e.ID) + "/" + url.PathEscape(name)
}

func (s *Server) entryVM(e model.GalleryEntry) entryVM {
	label := s.labels[e.Category]
	if label == "" {
		label = string(e.Category)
	}
	size := string(e.SizeHint)
	if size == "" {
		size = string(model.SizeNormal)
	}
	return entryVM{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Category:      string(e.Category),
		CategoryLabel: label,
		Src:           imageURL(e),
		Size:          size,
	}
}

// mainVMFor must be called with sess.mu held.
func (s *Server) mainVMFor(sess *session) mainVM {
	ctrl := sess.ctrl
	active := ctrl.ActiveCategory()

	vm := mainVM{
		Site:         s.cfg.Site,
		EmptyText:    s.cfg.Site.EmptyText,
		MenuOpen:     sess.menuOpen,
		ScrollLocked: sess.lock.Held(),
	}
	for _, c := range gallery.CountCategories(s.defs, s.cfg.Catalog) {
		icon := ""
		if c.Icon.Valid() {
			icon = c.Icon.String()
		}
		vm.Categories = append(vm.Categories, categoryVM{
			ID:     string(c.ID),
			Label:  c.Label,
			Icon:   icon,
			Count:  c.Count,
			Active: c.ID == active,
		})
	}
	filtered := ctrl.FilteredEntries()
	for _, e := range filtered {
		vm.Entries = append(vm.Entries, s.entryVM(e))
	}
	if sel, ok := ctrl.Selected(); ok {
		vm.Lightbox = &lightboxVM{
			entryVM:  s.entryVM(sel),
			Position: ctrl.CurrentIndex() + 1,
			Total:    len(filtered),
			HasPrev:  ctrl.HasPrev(),
			HasNext:  ctrl.HasNext(),
		}
	}
	return vm
}

func (s *Server) renderMain(sess *session) (string, bool, error) {
	sess.mu.Lock()
	vm := s.mainVMFor(sess)
	sess.mu.Unlock()
	html, err := s.renderTemplate("main", vm)
	return html, vm.ScrollLocked, err
}
