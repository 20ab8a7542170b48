package tui

import (
	"fmt"
	"strings"

	"photo-gallery/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

// entryItem is one photograph in the grid.
type entryItem struct {
	entry model.GalleryEntry
	label string // category label
}

func (i entryItem) FilterValue() string { return i.entry.Title }
func (i entryItem) Title() string       { return i.entry.Title }
func (i entryItem) Description() string {
	return fmt.Sprintf("%s %s %s", i.label, glyphBullet(), sizeLabel(i.entry.SizeHint))
}

func sizeLabel(s model.SizeHint) string {
	if s == "" {
		return string(model.SizeNormal)
	}
	return string(s)
}

func entryItems(entries []model.GalleryEntry, labels map[model.Category]string) []list.Item {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		label := labels[e.Category]
		if strings.TrimSpace(label) == "" {
			label = string(e.Category)
		}
		items = append(items, entryItem{entry: e, label: label})
	}
	return items
}

func newGrid(items []list.Item) list.Model {
	l := list.New(items, newEntryCardDelegate(), 0, 0)
	l.Title = "Gallery"
	// Header, filter bar and footer are drawn by the app; keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("photo", "photos")
	// Quitting is handled by the app (it must release the scroll lock first).
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	// Left/right belong to the filter bar; paging stays on pgup/pgdn.
	l.KeyMap.PrevPage.SetKeys("pgup", "b")
	l.KeyMap.NextPage.SetKeys("pgdown", "f")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

func selectedEntry(l list.Model) (model.GalleryEntry, bool) {
	it, ok := l.SelectedItem().(entryItem)
	if !ok {
		return model.GalleryEntry{}, false
	}
	return it.entry, true
}

// selectEntryID moves the cursor to id when it is listed.
func selectEntryID(l *list.Model, id int) bool {
	for i, it := range l.Items() {
		if ei, ok := it.(entryItem); ok && ei.entry.ID == id {
			l.Select(i)
			return true
		}
	}
	return false
}
