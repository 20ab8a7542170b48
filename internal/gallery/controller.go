package gallery

import (
	"slices"

	"photo-gallery/internal/model"
)

// Controller holds the presentational state of one gallery session: the active
// category and the entry open in the lightbox (if any).
//
// States are Closed and Open(id). The scroll lock is acquired on Closed→Open
// and released on every path back to Closed, including Teardown.
//
// A Controller is not safe for concurrent use; callers serialize access.
type Controller struct {
	catalog []model.GalleryEntry
	active  model.Category

	open       bool
	selectedID int

	lock     ScrollLock
	release  func()
	tornDown bool
}

// NewController creates a Closed controller over catalog with the "all" filter.
// A nil lock means NopLock.
func NewController(catalog []model.GalleryEntry, lock ScrollLock) *Controller {
	if lock == nil {
		lock = NopLock
	}
	return &Controller{
		catalog: slices.Clone(catalog),
		active:  model.CategoryAll,
		lock:    lock,
	}
}

func (c *Controller) Catalog() []model.GalleryEntry { return slices.Clone(c.catalog) }

func (c *Controller) ActiveCategory() model.Category { return c.active }

// FilteredEntries is the live filtered sequence for the active category.
func (c *Controller) FilteredEntries() []model.GalleryEntry {
	return Filter(c.catalog, c.active)
}

// SetActiveCategory changes the filter. An open selection that is no longer
// part of the filtered sequence closes the lightbox; one that still is stays
// open and navigation follows the new sequence.
func (c *Controller) SetActiveCategory(cat model.Category) {
	c.active = cat
	if c.open && c.CurrentIndex() < 0 {
		c.Close()
	}
}

// IsOpen reports whether the lightbox is open.
func (c *Controller) IsOpen() bool { return c.open }

// Selected returns the entry open in the lightbox.
func (c *Controller) Selected() (model.GalleryEntry, bool) {
	if !c.open {
		return model.GalleryEntry{}, false
	}
	return Find(c.catalog, c.selectedID)
}

// Open shows entry in the lightbox. It reports false (and changes nothing) when
// entry is not part of the current filtered sequence or the controller has been
// torn down.
func (c *Controller) Open(entry model.GalleryEntry) bool {
	return c.OpenID(entry.ID)
}

// OpenID is Open by entry id.
func (c *Controller) OpenID(id int) bool {
	if c.tornDown {
		return false
	}
	if IndexOf(c.FilteredEntries(), id) < 0 {
		return false
	}
	if !c.open {
		c.release = c.lock.Acquire()
		c.open = true
	}
	c.selectedID = id
	return true
}

// Close returns to Closed and releases the scroll lock. Closing a closed
// controller is a no-op.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.open = false
	c.selectedID = 0
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

// Teardown closes the lightbox and disables further opens. It is safe to call
// more than once.
func (c *Controller) Teardown() {
	c.Close()
	c.tornDown = true
}

// CurrentIndex is the position of the selected entry in the filtered sequence,
// or -1 when nothing is selected or the entry is not part of it.
func (c *Controller) CurrentIndex() int {
	if !c.open {
		return -1
	}
	return IndexOf(c.FilteredEntries(), c.selectedID)
}

func (c *Controller) HasNext() bool {
	i := c.CurrentIndex()
	return i >= 0 && i < len(c.FilteredEntries())-1
}

func (c *Controller) HasPrev() bool {
	return c.CurrentIndex() > 0
}

// Next selects the following entry. It never wraps and reports whether the
// selection moved.
func (c *Controller) Next() bool {
	if !c.HasNext() {
		return false
	}
	c.selectedID = c.FilteredEntries()[c.CurrentIndex()+1].ID
	return true
}

// Prev selects the preceding entry. It never wraps and reports whether the
// selection moved.
func (c *Controller) Prev() bool {
	if !c.HasPrev() {
		return false
	}
	c.selectedID = c.FilteredEntries()[c.CurrentIndex()-1].ID
	return true
}

// Snapshot is a read-only view of a controller, shaped for renderers and
// machine-readable output.
type Snapshot struct {
	ActiveCategory model.Category       `json:"activeCategory" yaml:"activeCategory"`
	Entries        []model.GalleryEntry `json:"entries" yaml:"entries"`
	Open           bool                 `json:"open" yaml:"open"`
	Selected       *model.GalleryEntry  `json:"selected,omitempty" yaml:"selected,omitempty"`
	CurrentIndex   int                  `json:"currentIndex" yaml:"currentIndex"`
	HasNext        bool                 `json:"hasNext" yaml:"hasNext"`
	HasPrev        bool                 `json:"hasPrev" yaml:"hasPrev"`
}

func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		ActiveCategory: c.active,
		Entries:        c.FilteredEntries(),
		Open:           c.open,
		CurrentIndex:   c.CurrentIndex(),
		HasNext:        c.HasNext(),
		HasPrev:        c.HasPrev(),
	}
	if e, ok := c.Selected(); ok {
		s.Selected = &e
	}
	return s
}
