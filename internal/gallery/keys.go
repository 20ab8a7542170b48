package gallery

import "strings"

// Key is a lightbox key binding, independent of any input system.
type Key int

const (
	KeyNone Key = iota
	KeyClose
	KeyNext
	KeyPrev
)

// ParseKey maps key names from terminals (bubbletea) and browsers
// (KeyboardEvent.key) onto lightbox bindings.
func ParseKey(name string) Key {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "esc", "escape":
		return KeyClose
	case "right", "arrowright":
		return KeyNext
	case "left", "arrowleft":
		return KeyPrev
	default:
		return KeyNone
	}
}

// HandleKey applies k to an open lightbox. Keys are ignored while the
// lightbox is closed. It reports whether the key was consumed.
func HandleKey(c *Controller, k Key) bool {
	if !c.IsOpen() {
		return false
	}
	switch k {
	case KeyClose:
		c.Close()
		return true
	case KeyNext:
		if c.HasNext() {
			c.Next()
		}
		return true
	case KeyPrev:
		if c.HasPrev() {
			c.Prev()
		}
		return true
	default:
		return false
	}
}
