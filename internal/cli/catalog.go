package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/store"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build and check catalog files",
	}
	cmd.AddCommand(newCatalogScanCmd(app))
	cmd.AddCommand(newCatalogValidateCmd(app))
	return cmd
}

func newCatalogScanCmd(app *App) *cobra.Command {
	var pattern string
	var out string
	var force bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "Build a catalog from image files (category = parent directory)",
		Example: strings.TrimSpace(`
# Print a catalog for ~/Pictures/gallery
gallery catalog scan ~/Pictures/gallery --format yaml

# Write it next to the images and browse it
gallery catalog scan ~/Pictures/gallery --out ~/Pictures/gallery/catalog.yaml
gallery --catalog ~/Pictures/gallery/catalog.yaml
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if fi, err := os.Stat(root); err != nil {
				return writeErr(cmd, err)
			} else if !fi.IsDir() {
				return writeErr(cmd, errors.New("scan root must be a directory: "+root))
			}

			var bar *progressbar.ProgressBar
			opts := store.ScanOptions{Pattern: pattern}
			if !quiet {
				opts.Progress = func(done, total int) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetWriter(cmd.ErrOrStderr()),
							progressbar.OptionSetDescription("Scanning images"),
							progressbar.OptionSetWidth(40),
							progressbar.OptionShowCount(),
							progressbar.OptionClearOnFinish(),
						)
					}
					_ = bar.Set(done)
				}
			}
			cf, err := store.ScanCatalog(root, opts)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			out = strings.TrimSpace(out)
			if out == "" {
				return writeOut(cmd, app, map[string]any{
					"data": cf,
					"meta": map[string]any{
						"root":    root,
						"entries": len(cf.Entries),
					},
					"_hints": []string{"gallery catalog scan " + root + " --out <file>"},
				})
			}

			if _, err := os.Stat(out); err == nil && !force {
				return writeErr(cmd, errors.New("refusing to overwrite "+out+" (pass --force)"))
			}
			if err := rebaseRefs(cf, root, out); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveCatalog(out, cf); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path":       out,
					"entries":    len(cf.Entries),
					"categories": len(cf.Categories),
				},
				"_hints": []string{"gallery --catalog " + out},
			})
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", store.DefaultScanPattern, "Glob (doublestar) relative to root")
	cmd.Flags().StringVar(&out, "out", "", "Write the catalog YAML to this file instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite --out if it exists")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Hide the progress bar")
	return cmd
}

// rebaseRefs rewrites scanned imageRefs (relative to root) so they resolve
// from the directory of the catalog file written at out.
func rebaseRefs(cf *store.CatalogFile, root, out string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving scan root: %w", err)
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolving --out: %w", err)
	}
	rel, err := filepath.Rel(filepath.Dir(absOut), absRoot)
	if err != nil {
		return fmt.Errorf("catalog %s cannot refer to images under %s: %w", out, root, err)
	}
	if rel == "." {
		return nil
	}
	for i := range cf.Entries {
		ref := filepath.Join(rel, filepath.FromSlash(cf.Entries[i].ImageRef))
		cf.Entries[i].ImageRef = filepath.ToSlash(ref)
	}
	return nil
}

func newCatalogValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a catalog file (defaults to --catalog / config catalog)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.CatalogPath = args[0]
			}
			src, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path := src.Path
			if path == "" {
				path = "(built-in)"
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path":       path,
					"valid":      true,
					"entries":    len(src.Entries),
					"categories": gallery.CountCategories(src.Categories, src.Entries),
				},
			})
		},
	}
}
