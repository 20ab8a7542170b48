package store

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"photo-gallery/internal/model"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultScanPattern matches common image files at any depth.
const DefaultScanPattern = "**/*.{jpg,jpeg,png,gif,webp,JPG,JPEG,PNG}"

// ScanOptions controls ScanCatalog.
type ScanOptions struct {
	// Pattern is a doublestar glob relative to the root. Empty means DefaultScanPattern.
	Pattern string
	// Progress, if set, is called after each matched file.
	Progress func(done, total int)
}

// ScanCatalog builds a catalog from image files under root. Each file's
// category is its parent directory name; files directly under root fall into
// "uncategorized". Entries are ordered by path and numbered from 1. ImageRef is
// the slash-separated path relative to root.
func ScanCatalog(root string, opts ScanOptions) (*CatalogFile, error) {
	pattern := strings.TrimSpace(opts.Pattern)
	if pattern == "" {
		pattern = DefaultScanPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(matches)

	cf := &CatalogFile{}
	for i, rel := range matches {
		cf.Entries = append(cf.Entries, model.GalleryEntry{
			ID:       i + 1,
			Category: categoryForPath(rel),
			Title:    titleForPath(rel),
			ImageRef: rel,
			SizeHint: model.SizeNormal,
		})
		if opts.Progress != nil {
			opts.Progress(i+1, len(matches))
		}
	}
	if len(cf.Entries) == 0 {
		return nil, fmt.Errorf("scanning %s: %w", root, ErrEmptyCatalog)
	}
	for _, c := range categoriesInOrder(cf.Entries) {
		cf.Categories = append(cf.Categories, model.CategoryDef{ID: c, Label: titleCase(string(c))})
	}
	return cf, nil
}

func categoryForPath(rel string) model.Category {
	dir := path.Dir(rel)
	if dir == "." || dir == "" {
		return "uncategorized"
	}
	c := model.NormalizeCategory(path.Base(dir))
	if c == model.CategoryAll {
		return "all-works"
	}
	return c
}

func titleForPath(rel string) string {
	base := path.Base(rel)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return titleCase(strings.Join(strings.Fields(base), " "))
}

// titleCase upper-cases the first letter only; the rest keeps its case.
func titleCase(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
}

func categoriesInOrder(entries []model.GalleryEntry) []model.Category {
	var out []model.Category
	seen := map[model.Category]bool{}
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}
