package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"photo-gallery/internal/model"
)

const sampleCatalogYAML = `
categories:
  - id: portrait
    label: Portraits
    icon: camera
  - id: Landscape
    icon: heart
entries:
  - id: 1
    category: Portrait
    title: "  Portrait session "
    imageRef: https://example.com/1.jpg
    size: large
  - id: 2
    category: landscape
    title: Landscape
    imageRef: photos/2.jpg
`

func TestParseCatalog_YAML(t *testing.T) {
	t.Parallel()

	cf, err := ParseCatalog([]byte(sampleCatalogYAML), false)
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if len(cf.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cf.Entries))
	}
	e := cf.Entries[0]
	if e.Category != model.CategoryPortrait || e.Title != "Portrait session" || e.SizeHint != model.SizeLarge {
		t.Fatalf("entry 1 not normalized: %#v", e)
	}
	if cf.Entries[1].SizeHint != model.SizeNormal {
		t.Fatalf("missing size should default to normal, got %q", cf.Entries[1].SizeHint)
	}
	if cf.Categories[0].Icon != model.IconCamera {
		t.Fatalf("expected camera icon, got %v", cf.Categories[0].Icon)
	}
	if cf.Categories[1].ID != model.CategoryLandscape || cf.Categories[1].Label != "landscape" {
		t.Fatalf("category 2 not normalized: %#v", cf.Categories[1])
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
		wantSub string
	}{
		{name: "empty", in: "entries: []\n", wantErr: ErrEmptyCatalog},
		{
			name:    "duplicate id",
			in:      "entries:\n  - {id: 1, category: a, imageRef: x}\n  - {id: 1, category: b, imageRef: y}\n",
			wantErr: ErrDuplicateID,
		},
		{
			name:    "reserved category",
			in:      "entries:\n  - {id: 1, category: ALL, imageRef: x}\n",
			wantErr: ErrReservedCategory,
		},
		{
			name:    "bad size",
			in:      "entries:\n  - {id: 1, category: a, imageRef: x, size: huge}\n",
			wantSub: "invalid size",
		},
		{
			name:    "missing image",
			in:      "entries:\n  - {id: 1, category: a}\n",
			wantSub: "missing imageRef",
		},
		{
			name:    "unknown field",
			in:      "entries:\n  - {id: 1, category: a, imageRef: x, colour: red}\n",
			wantSub: "decoding yaml",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCatalog([]byte(tt.in), false)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantSub != "" && !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("expected error containing %q, got %v", tt.wantSub, err)
			}
		})
	}
}

func TestSaveAndLoadCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := &CatalogFile{
		Categories: []model.CategoryDef{{ID: model.CategoryPortrait, Label: "Portraits", Icon: model.IconCamera}},
		Entries: []model.GalleryEntry{
			{ID: 3, Category: model.CategoryPortrait, Title: "Three", ImageRef: "a.jpg", SizeHint: model.SizeMedium},
			{ID: 1, Category: model.CategoryLandscape, Title: "One", ImageRef: "b.jpg", SizeHint: model.SizeNormal},
		},
	}

	yamlPath := filepath.Join(dir, "catalog.yaml")
	if err := SaveCatalog(yamlPath, want); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}
	got, err := LoadCatalog(yamlPath)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("catalog mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}

	jsonPath := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(jsonPath, []byte(`{"entries":[{"id":5,"category":"portrait","title":"J","imageRef":"j.jpg"}]}`), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	jcf, err := LoadCatalog(jsonPath)
	if err != nil {
		t.Fatalf("LoadCatalog json: %v", err)
	}
	if len(jcf.Entries) != 1 || jcf.Entries[0].ID != 5 {
		t.Fatalf("unexpected json catalog: %#v", jcf)
	}
}
