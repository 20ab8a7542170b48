package model

import "strings"

// Icon is a closed set of icon identifiers used by the presentation layers.
type Icon int

const (
	IconNone Icon = iota
	IconClose
	IconZoomIn
	IconChevronLeft
	IconChevronRight
	IconCamera
	IconGrid
	IconHeart
	IconShare
	IconDownload
	IconMenu

	iconCount
)

var iconNames = [iconCount]string{
	IconNone:         "",
	IconClose:        "x",
	IconZoomIn:       "zoom-in",
	IconChevronLeft:  "chevron-left",
	IconChevronRight: "chevron-right",
	IconCamera:       "camera",
	IconGrid:         "grid-3x3",
	IconHeart:        "heart",
	IconShare:        "share-2",
	IconDownload:     "download",
	IconMenu:         "menu",
}

func (i Icon) String() string {
	if i < 0 || i >= iconCount {
		return ""
	}
	return iconNames[i]
}

// Valid reports whether i names a renderable icon. IconNone and out-of-range
// values render nothing.
func (i Icon) Valid() bool {
	return i > IconNone && i < iconCount
}

// ParseIcon resolves an icon name. Unknown names yield IconNone, false.
func ParseIcon(name string) (Icon, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return IconNone, false
	}
	for i := IconNone + 1; i < iconCount; i++ {
		if iconNames[i] == name {
			return i, true
		}
	}
	return IconNone, false
}

func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Icon) UnmarshalText(b []byte) error {
	ic, _ := ParseIcon(string(b))
	*i = ic
	return nil
}
