package tui

import (
	"photo-gallery/internal/gallery"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Rows used by the header, hero, filter bar and footer around the grid.
const chromeHeight = 9

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.ctrl.IsOpen() {
			return m.updateLightbox(msg)
		}
		if m.menuOpen {
			return m.updateMenu(msg)
		}
		return m.updateClosed(msg)
	}

	// Non-key messages reach the grid only while the page may scroll.
	if m.lock.Held() {
		return m, nil
	}
	var cmd tea.Cmd
	if m.section == sectionAbout {
		m.about, cmd = m.about.Update(msg)
	} else {
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

// updateLightbox handles keys while a photograph is open. The page behind it
// holds the scroll lock and receives nothing.
func (m appModel) updateLightbox(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !gallery.HandleKey(m.ctrl, lightboxKey(msg)) {
		return m, nil
	}
	if sel, ok := m.ctrl.Selected(); ok {
		selectEntryID(&m.grid, sel.ID)
		m.log.Debug("lightbox", "id", sel.ID, "index", m.ctrl.CurrentIndex())
	} else {
		m.log.Debug("lightbox closed")
	}
	return m, nil
}

func (m appModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "m":
		m.menuOpen = false
	case "q":
		return m.quit()
	case "g", "1":
		m.section = sectionGallery
		m.menuOpen = false
	case "a", "2":
		m.section = sectionAbout
		m.menuOpen = false
	}
	return m, nil
}

func (m appModel) updateClosed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Menu):
		m.menuOpen = true
		return m, nil
	case key.Matches(msg, m.keys.Section):
		if m.section == sectionGallery {
			m.section = sectionAbout
		} else {
			m.section = sectionGallery
		}
		m.saveState()
		return m, nil
	}

	if m.section == sectionAbout {
		var cmd tea.Cmd
		m.about, cmd = m.about.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.PrevCategory):
		if m.catIdx > 0 {
			m.setCategory(m.catIdx - 1)
			m.saveState()
		}
		return m, nil
	case key.Matches(msg, m.keys.NextCategory):
		if m.catIdx < len(m.defs)-1 {
			m.setCategory(m.catIdx + 1)
			m.saveState()
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if e, ok := selectedEntry(m.grid); ok && m.ctrl.Open(e) {
			m.log.Debug("lightbox", "id", e.ID, "index", m.ctrl.CurrentIndex())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.saveState()
	m.ctrl.Teardown()
	return m, tea.Quit
}

func (m *appModel) resize() {
	w := m.width - 4
	if w < 0 {
		w = 0
	}
	h := m.height - chromeHeight
	if h < 0 {
		h = 0
	}
	m.grid.SetSize(w, h)
	m.about.Width = w
	m.about.Height = h
	m.about.SetContent(m.aboutContent(w))
	m.help.Width = w
}
