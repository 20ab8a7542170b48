package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photo-gallery/internal/model"
	"photo-gallery/internal/store"

	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points config and state at temp locations so tests never read the
// working directory's gallery.yaml or ~/.gallery.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GALLERY_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("GALLERY_CONFIG", filepath.Join(dir, "gallery.yaml"))
	for _, k := range []string{"GALLERY_CATALOG", "GALLERY_FORMAT"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	return dir
}

func mustEnvelope(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: gallery %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	if meta, ok := env["meta"]; ok && meta != nil {
		if _, ok := meta.(map[string]any); !ok {
			t.Fatalf("expected meta to be object; got %T", meta)
		}
	}
	if hints, ok := env["_hints"]; ok && hints != nil {
		if _, ok := hints.([]any); !ok {
			t.Fatalf("expected _hints to be list; got %T", hints)
		}
	}
	return env
}

func entryIDs(t *testing.T, v any) []int {
	t.Helper()
	list, ok := v.([]any)
	if !ok {
		t.Fatalf("expected list; got %T", v)
	}
	out := make([]int, 0, len(list))
	for _, it := range list {
		m, _ := it.(map[string]any)
		id, _ := m["id"].(float64)
		out = append(out, int(id))
	}
	return out
}

func TestOutputContract_JSONEnvelope(t *testing.T) {
	isolate(t)

	mustEnvelope(t, "entries", "list")
	mustEnvelope(t, "entries", "show", "2")
	mustEnvelope(t, "categories")
	mustEnvelope(t, "browse", "--open", "1", "--keys", "right")
	mustEnvelope(t, "catalog", "validate")
}

func TestEntriesList_FiltersByCategory(t *testing.T) {
	isolate(t)

	tests := []struct {
		category string
		want     []int
	}{
		{category: "all", want: []int{1, 2, 3}},
		{category: "landscape", want: []int{2}},
		{category: "Portrait", want: []int{1}},
		{category: "street", want: []int{}},
	}
	for _, tt := range tests {
		env := mustEnvelope(t, "entries", "list", "--category", tt.category)
		got := entryIDs(t, env["data"])
		if len(got) != len(tt.want) {
			t.Fatalf("category %q: ids = %v, want %v", tt.category, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("category %q: ids = %v, want %v", tt.category, got, tt.want)
			}
		}
	}
}

func TestEntriesShow_NotFound(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, []string{"entries", "show", "99"})
	if err == nil {
		t.Fatalf("expected error for unknown entry")
	}
	if !strings.Contains(string(stderr), "entry not found: 99") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCategories_Counts(t *testing.T) {
	isolate(t)

	env := mustEnvelope(t, "categories")
	list, _ := env["data"].([]any)
	if len(list) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(list))
	}
	first, _ := list[0].(map[string]any)
	if first["id"] != "all" || first["count"] != float64(3) {
		t.Fatalf("first category = %v", first)
	}
}

func TestBrowse_ReplaysKeys(t *testing.T) {
	isolate(t)

	env := mustEnvelope(t, "browse", "--open", "1", "--keys", "right,ArrowRight,right,left")
	data := env["data"].(map[string]any)
	state := data["state"].(map[string]any)
	if state["open"] != true {
		t.Fatalf("expected lightbox open: %v", state)
	}
	sel, _ := state["selected"].(map[string]any)
	if sel["id"] != float64(2) {
		t.Fatalf("selected = %v, want id 2", sel)
	}
	steps := data["steps"].([]any)
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}
	lock := data["lock"].(map[string]any)
	if lock["held"] != true || lock["acquired"] != float64(1) {
		t.Fatalf("lock = %v", lock)
	}

	env = mustEnvelope(t, "browse", "--open", "3", "--keys", "esc,right")
	data = env["data"].(map[string]any)
	if data["state"].(map[string]any)["open"] != false {
		t.Fatalf("expected closed after esc")
	}
	last := data["steps"].([]any)[1].(map[string]any)
	if last["consumed"] != false {
		t.Fatalf("key after close must be ignored: %v", last)
	}
	lock = data["lock"].(map[string]any)
	if lock["held"] != false || lock["released"] != float64(1) {
		t.Fatalf("lock = %v", lock)
	}
}

func TestBrowse_RejectsHiddenEntry(t *testing.T) {
	isolate(t)

	if _, _, err := runCLI(t, []string{"browse", "--category", "landscape", "--open", "1"}); err == nil {
		t.Fatalf("expected error opening a portrait under landscape")
	}
	if _, _, err := runCLI(t, []string{"browse", "--open", "42"}); err == nil {
		t.Fatalf("expected error for unknown entry")
	}
}

func writeImage(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCatalogScan_WriteAndBrowse(t *testing.T) {
	dir := isolate(t)
	root := filepath.Join(dir, "photos")
	writeImage(t, root, "portrait/anna.jpg")
	writeImage(t, root, "landscape/fjord.png")
	writeImage(t, root, "landscape/notes.txt")

	env := mustEnvelope(t, "catalog", "scan", root, "--quiet")
	cat := env["data"].(map[string]any)
	if got := len(cat["entries"].([]any)); got != 2 {
		t.Fatalf("scanned %d entries, want 2", got)
	}

	out := filepath.Join(root, "catalog.yaml")
	mustEnvelope(t, "catalog", "scan", root, "--quiet", "--out", out)
	if _, _, err := runCLI(t, []string{"catalog", "scan", root, "--quiet", "--out", out}); err == nil {
		t.Fatalf("expected refusal to overwrite without --force")
	}

	env = mustEnvelope(t, "catalog", "validate", out)
	if env["data"].(map[string]any)["valid"] != true {
		t.Fatalf("expected valid catalog")
	}

	env = mustEnvelope(t, "--catalog", out, "entries", "list", "--category", "landscape")
	list := env["data"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["imageRef"] != "landscape/fjord.png" {
		t.Fatalf("landscape entries = %v", list)
	}
}

func TestCatalogValidate_RejectsBadCatalog(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "bad.yaml")
	bad := "entries:\n  - id: 1\n    category: all\n    title: x\n    imageRef: x.jpg\n"
	if err := os.WriteFile(p, []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, stderr, err := runCLI(t, []string{"catalog", "validate", p})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(string(stderr), "reserved") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestInit_WritesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "conf", "gallery.yaml")

	env := mustEnvelope(t, "--config", path, "init", "--yes")
	if env["data"].(map[string]any)["path"] != path {
		t.Fatalf("init path = %v", env["data"])
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, _, err := runCLI(t, []string{"--config", path, "init", "--yes"}); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	mustEnvelope(t, "--config", path, "init", "--yes", "--force")
}

func TestConfig_CatalogPathRelativeToConfig(t *testing.T) {
	dir := isolate(t)
	catalog := "entries:\n  - id: 7\n    category: street\n    title: Corner\n    imageRef: corner.jpg\n"
	if err := os.WriteFile(filepath.Join(dir, "photos.yaml"), []byte(catalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cfgPath := filepath.Join(dir, "gallery.yaml")
	if err := os.WriteFile(cfgPath, []byte("catalog: photos.yaml\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	env := mustEnvelope(t, "--config", cfgPath, "entries", "list", "--category", "street")
	if got := entryIDs(t, env["data"]); len(got) != 1 || got[0] != 7 {
		t.Fatalf("ids = %v, want [7]", got)
	}
}

func TestConfig_InvalidEnvOverrideFails(t *testing.T) {
	isolate(t)
	t.Setenv("GALLERY_LOG__LEVEL", "loud")

	if _, _, err := runCLI(t, []string{"categories"}); err == nil {
		t.Fatalf("expected invalid log level to fail")
	}
}

func TestFormat_YAML(t *testing.T) {
	isolate(t)

	stdout, stderr, err := runCLI(t, []string{"--format", "yaml", "entries", "show", "3"})
	if err != nil {
		t.Fatalf("yaml output failed: %v\n%s", err, stderr)
	}
	var env map[string]any
	if err := yaml.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal yaml: %v\n%s", err, stdout)
	}
	data, _ := env["data"].(map[string]any)
	if data["id"] != 3 || data["category"] != "architecture" {
		t.Fatalf("data = %v", data)
	}
}

func TestCatalogScan_RelativeOutOutsideRoot(t *testing.T) {
	dir := isolate(t)
	root := filepath.Join(dir, "pics")
	writeImage(t, root, "landscape/lake.jpg")
	t.Chdir(dir)

	out := filepath.Join("out", "catalog.yaml")
	mustEnvelope(t, "catalog", "scan", root, "--quiet", "--out", out)

	env := mustEnvelope(t, "--catalog", out, "entries", "show", "1")
	ref, _ := env["data"].(map[string]any)["imageRef"].(string)
	if ref != "../pics/landscape/lake.jpg" {
		t.Fatalf("imageRef = %q, want ../pics/landscape/lake.jpg", ref)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", filepath.FromSlash(ref))); err != nil {
		t.Fatalf("imageRef does not resolve from the catalog file: %v", err)
	}
}

func TestRebaseRefs(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "pics")

	tests := []struct {
		name string
		out  string
		want string
	}{
		{name: "inside root", out: filepath.Join(root, "catalog.yaml"), want: "landscape/lake.jpg"},
		{name: "nested under root", out: filepath.Join(root, "meta", "catalog.yaml"), want: "../landscape/lake.jpg"},
		{name: "sibling dir", out: filepath.Join(base, "catalogs", "catalog.yaml"), want: "../pics/landscape/lake.jpg"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cf := &store.CatalogFile{Entries: []model.GalleryEntry{{ID: 1, ImageRef: "landscape/lake.jpg"}}}
			if err := rebaseRefs(cf, root, tt.out); err != nil {
				t.Fatalf("rebaseRefs: %v", err)
			}
			if got := cf.Entries[0].ImageRef; got != tt.want {
				t.Fatalf("imageRef = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteErr_PrintsOnce(t *testing.T) {
	isolate(t)

	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"entries", "show", "99"})
	// fang silences cobra and prints through its handler instead.
	cmd.SilenceErrors = true

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error for unknown entry")
	}
	if !Reported(err) {
		t.Fatalf("error %v not marked as reported", err)
	}
	if n := strings.Count(errBuf.String(), "entry not found: 99"); n != 1 {
		t.Fatalf("error printed %d times: %q", n, errBuf.String())
	}
	if Reported(errors.New("unknown flag: --nope")) {
		t.Fatalf("plain errors must reach the fang handler")
	}
}
