package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"photo-gallery/internal/model"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog     = errors.New("catalog has no entries")
	ErrDuplicateID      = errors.New("duplicate entry id")
	ErrReservedCategory = errors.New("category \"all\" is reserved for filtering")
)

// CatalogFile is the on-disk catalog format (YAML or JSON).
type CatalogFile struct {
	Categories []model.CategoryDef  `json:"categories,omitempty" yaml:"categories,omitempty"`
	Entries    []model.GalleryEntry `json:"entries" yaml:"entries"`
}

// LoadCatalog reads and validates a catalog file. Files ending in .json are
// decoded as JSON; everything else as YAML.
func LoadCatalog(path string) (*CatalogFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	cf, err := ParseCatalog(b, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cf, nil
}

// ParseCatalog decodes and validates catalog bytes.
func ParseCatalog(b []byte, isJSON bool) (*CatalogFile, error) {
	var cf CatalogFile
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cf); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cf); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	}
	if err := cf.Normalize(); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Normalize canonicalizes categories and size hints and checks catalog invariants.
func (cf *CatalogFile) Normalize() error {
	if len(cf.Entries) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[int]bool, len(cf.Entries))
	for i := range cf.Entries {
		e := &cf.Entries[i]
		if seen[e.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true

		e.Category = model.NormalizeCategory(string(e.Category))
		if e.Category == "" {
			return fmt.Errorf("entry %d: missing category", e.ID)
		}
		if e.Category == model.CategoryAll {
			return fmt.Errorf("entry %d: %w", e.ID, ErrReservedCategory)
		}
		h, ok := model.ParseSizeHint(string(e.SizeHint))
		if !ok {
			return fmt.Errorf("entry %d: invalid size %q (expected normal|large|medium)", e.ID, e.SizeHint)
		}
		e.SizeHint = h
		e.Title = strings.TrimSpace(e.Title)
		if strings.TrimSpace(e.ImageRef) == "" {
			return fmt.Errorf("entry %d: missing imageRef", e.ID)
		}
	}
	for i := range cf.Categories {
		c := &cf.Categories[i]
		c.ID = model.NormalizeCategory(string(c.ID))
		if c.ID == "" {
			return fmt.Errorf("category %d: missing id", i)
		}
		if strings.TrimSpace(c.Label) == "" {
			c.Label = string(c.ID)
		}
	}
	return nil
}

// SaveCatalog writes cf as YAML.
func SaveCatalog(path string, cf *CatalogFile) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cf); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing catalog %s: %w", path, err)
	}
	return nil
}
