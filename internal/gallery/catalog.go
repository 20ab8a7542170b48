package gallery

import "photo-gallery/internal/model"

const defaultImageRef = "https://oejgkvftpbinliuopipr.supabase.co/storage/v1/object/public/assets/user_347995964/user-photo-1.jpg?"

// DefaultCatalog is the built-in catalog used when no catalog file is configured.
func DefaultCatalog() []model.GalleryEntry {
	return []model.GalleryEntry{
		{
			ID:          1,
			Category:    model.CategoryPortrait,
			Title:       "Portrait session",
			Description: "Professional portrait photography",
			ImageRef:    defaultImageRef,
			SizeHint:    model.SizeLarge,
		},
		{
			ID:          2,
			Category:    model.CategoryLandscape,
			Title:       "Landscape",
			Description: "Natural beauty",
			ImageRef:    defaultImageRef,
			SizeHint:    model.SizeMedium,
		},
		{
			ID:          3,
			Category:    model.CategoryArchitecture,
			Title:       "Architecture",
			Description: "City scenes",
			ImageRef:    defaultImageRef,
			SizeHint:    model.SizeMedium,
		},
	}
}

// DefaultCategories are the filter-bar entries, "all" first.
func DefaultCategories() []model.CategoryDef {
	return []model.CategoryDef{
		{ID: model.CategoryAll, Label: "All works", Icon: model.IconGrid},
		{ID: model.CategoryPortrait, Label: "Portraits", Icon: model.IconCamera},
		{ID: model.CategoryLandscape, Label: "Landscapes", Icon: model.IconHeart},
		{ID: model.CategoryArchitecture, Label: "Architecture", Icon: model.IconShare},
	}
}

// CategoriesFor returns defs extended with any category used by catalog that
// defs does not name. Added categories use the tag as label and no icon.
func CategoriesFor(defs []model.CategoryDef, catalog []model.GalleryEntry) []model.CategoryDef {
	out := make([]model.CategoryDef, 0, len(defs)+1)
	seen := map[model.Category]bool{}
	if len(defs) == 0 || defs[0].ID != model.CategoryAll {
		out = append(out, model.CategoryDef{ID: model.CategoryAll, Label: "All works", Icon: model.IconGrid})
		seen[model.CategoryAll] = true
	}
	for _, d := range defs {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		out = append(out, d)
	}
	for _, c := range PresentCategories(catalog) {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, model.CategoryDef{ID: c, Label: string(c)})
	}
	return out
}
