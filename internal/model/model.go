package model

import "strings"

// Category is a gallery category tag.
//
// CategoryAll is a filter-only pseudo-category; it is never assigned to an entry.
type Category string

const (
	CategoryAll          Category = "all"
	CategoryPortrait     Category = "portrait"
	CategoryLandscape    Category = "landscape"
	CategoryArchitecture Category = "architecture"
)

func NormalizeCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}

// SizeHint is a layout hint for grid rendering. It carries no behavior.
type SizeHint string

const (
	SizeNormal SizeHint = "normal"
	SizeLarge  SizeHint = "large"
	SizeMedium SizeHint = "medium"
)

func ParseSizeHint(s string) (SizeHint, bool) {
	switch SizeHint(strings.ToLower(strings.TrimSpace(s))) {
	case "", SizeNormal:
		return SizeNormal, true
	case SizeLarge:
		return SizeLarge, true
	case SizeMedium:
		return SizeMedium, true
	default:
		return SizeNormal, false
	}
}

type GalleryEntry struct {
	ID          int      `json:"id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	ImageRef    string   `json:"imageRef" yaml:"imageRef"`
	SizeHint    SizeHint `json:"size,omitempty" yaml:"size,omitempty"`
}

// CategoryDef is a category as offered in the filter bar.
type CategoryDef struct {
	ID    Category `json:"id" yaml:"id"`
	Label string   `json:"label" yaml:"label"`
	Icon  Icon     `json:"icon,omitempty" yaml:"icon,omitempty"`
}
