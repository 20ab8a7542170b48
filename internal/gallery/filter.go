package gallery

import (
	"slices"

	"photo-gallery/internal/model"
)

// Filter returns the entries of catalog whose category equals active, in
// catalog order. CategoryAll returns a copy of the whole catalog. An unknown
// category yields an empty (non-nil) slice.
func Filter(catalog []model.GalleryEntry, active model.Category) []model.GalleryEntry {
	if active == model.CategoryAll {
		return slices.Clone(catalog)
	}
	out := make([]model.GalleryEntry, 0, len(catalog))
	for _, e := range catalog {
		if e.Category == active {
			out = append(out, e)
		}
	}
	return out
}

// IndexOf returns the position of the entry with the given id in entries, or -1.
func IndexOf(entries []model.GalleryEntry, id int) int {
	return slices.IndexFunc(entries, func(e model.GalleryEntry) bool { return e.ID == id })
}

// Find looks up an entry by id.
func Find(catalog []model.GalleryEntry, id int) (model.GalleryEntry, bool) {
	i := IndexOf(catalog, id)
	if i < 0 {
		return model.GalleryEntry{}, false
	}
	return catalog[i], true
}

// CategoryCount is a filter-bar category with the number of entries it selects.
type CategoryCount struct {
	model.CategoryDef `yaml:",inline"`

	Count int `json:"count" yaml:"count"`
}

// CountCategories pairs each definition with the size of its filtered sequence.
func CountCategories(defs []model.CategoryDef, catalog []model.GalleryEntry) []CategoryCount {
	out := make([]CategoryCount, 0, len(defs))
	for _, d := range defs {
		n := len(catalog)
		if d.ID != model.CategoryAll {
			n = 0
			for _, e := range catalog {
				if e.Category == d.ID {
					n++
				}
			}
		}
		out = append(out, CategoryCount{CategoryDef: d, Count: n})
	}
	return out
}

// PresentCategories returns the distinct categories used by catalog, in order
// of first appearance.
func PresentCategories(catalog []model.GalleryEntry) []model.Category {
	var out []model.Category
	for _, e := range catalog {
		if !slices.Contains(out, e.Category) {
			out = append(out, e.Category)
		}
	}
	return out
}
