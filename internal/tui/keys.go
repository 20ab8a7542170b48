package tui

import (
	"photo-gallery/internal/gallery"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	PrevCategory key.Binding
	NextCategory key.Binding
	Open         key.Binding
	Section      key.Binding
	Menu         key.Binding
	Quit         key.Binding

	// Lightbox bindings. These mirror gallery.ParseKey and are listed for help only.
	Close key.Binding
	Prev  key.Binding
	Next  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PrevCategory: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev category")),
		NextCategory: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next category")),
		Open:         key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "view")),
		Section:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "gallery/about")),
		Menu:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Prev:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
		Next:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
	}
}

// ShortHelp implements help.KeyMap for the closed gallery.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevCategory, k.NextCategory, k.Open, k.Section, k.Menu, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), k.lightboxHelp()}
}

func (k keyMap) lightboxHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Close}
}

// lightboxHelpMap adapts the lightbox bindings to help.KeyMap.
type lightboxHelpMap struct{ keyMap }

func (k lightboxHelpMap) ShortHelp() []key.Binding { return k.lightboxHelp() }

// lightboxKey maps a terminal key press onto a lightbox binding.
func lightboxKey(msg tea.KeyMsg) gallery.Key {
	switch msg.Type {
	case tea.KeyEsc:
		return gallery.KeyClose
	case tea.KeyRight:
		return gallery.KeyNext
	case tea.KeyLeft:
		return gallery.KeyPrev
	}
	return gallery.ParseKey(msg.String())
}
