package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"photo-gallery/internal/config"
	"photo-gallery/internal/format"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"
	"photo-gallery/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath  string
	CatalogPath string
	PrettyJSON  bool
	Format      string

	cfg *config.Config
}

// catalogSource is a loaded catalog plus where it came from.
type catalogSource struct {
	Entries    []model.GalleryEntry
	Categories []model.CategoryDef
	// Path is empty for the built-in catalog.
	Path string
	// Dir is the directory relative imageRefs resolve against.
	Dir string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "gallery",
		Short:        "Photo gallery: terminal UI, web site and scriptable catalog tools",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the gallery in the terminal
  gallery

  # Serve the gallery site on localhost
  gallery web --addr 127.0.0.1:3335

  # List landscape entries from a catalog file
  gallery --catalog photos.yaml entries list --category landscape

  # Replay lightbox keys and print the resulting state
  gallery browse --open 1 --keys "right,right,esc"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine.
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return writeErr(cmd, fmt.Errorf("loading .env: %w", err))
		}
		cfg, err := config.Load(app.ConfigPath)
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := cfg.Validate(); err != nil {
			return writeErr(cmd, fmt.Errorf("config %s: %w", app.ConfigPath, err))
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("GALLERY_CONFIG", config.DefaultPath), "Path to config file (YAML; missing file uses defaults)")
	cmd.PersistentFlags().StringVar(&app.CatalogPath, "catalog", envOr("GALLERY_CATALOG", ""), "Path to catalog file (YAML or JSON; overrides config catalog)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("GALLERY_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newWebTUICmd(app))
	cmd.AddCommand(newEntriesCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newCatalogCmd(app))
	cmd.AddCommand(newInitCmd(app))

	return cmd
}

// loadCatalog resolves the catalog: --catalog, then config catalog, then the
// built-in one. Relative config paths resolve against the config file.
func loadCatalog(app *App) (catalogSource, error) {
	p := strings.TrimSpace(app.CatalogPath)
	if p == "" && app.cfg != nil && app.cfg.Catalog != "" {
		p = app.cfg.Catalog
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(app.ConfigPath), p)
		}
	}
	if p == "" {
		entries := gallery.DefaultCatalog()
		return catalogSource{
			Entries:    entries,
			Categories: gallery.CategoriesFor(gallery.DefaultCategories(), entries),
		}, nil
	}

	cf, err := store.LoadCatalog(p)
	if err != nil {
		return catalogSource{}, err
	}
	defs := cf.Categories
	if len(defs) == 0 {
		defs = gallery.DefaultCategories()
	}
	dir, err := filepath.Abs(filepath.Dir(p))
	if err != nil {
		return catalogSource{}, err
	}
	return catalogSource{
		Entries:    cf.Entries,
		Categories: gallery.CategoriesFor(defs, cf.Entries),
		Path:       p,
		Dir:        dir,
	}, nil
}

// newLogger builds the slog logger described by log.*. When log.file is set
// logs go there; otherwise to fallback (nil discards). The returned func
// closes the log file, if any.
func newLogger(lc config.LogConfig, fallback io.Writer) (*slog.Logger, func() error, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	w := fallback
	closeFn := func() error { return nil }
	if p := strings.TrimSpace(lc.File); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), closeFn, nil
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), closeFn, nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), closeFn, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// reportedError marks an error writeErr has already printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func writeErr(cmd *cobra.Command, err error) error {
	var r reportedError
	if errors.As(err, &r) {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err}
}

// Reported reports whether err was already printed to stderr by a command.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
