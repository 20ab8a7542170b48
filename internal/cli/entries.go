package cli

import (
	"fmt"
	"strconv"
	"strings"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"

	"github.com/spf13/cobra"
)

func newEntriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Inspect catalog entries",
	}
	cmd.AddCommand(newEntriesListCmd(app))
	cmd.AddCommand(newEntriesShowCmd(app))
	return cmd
}

func newEntriesListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries visible under a category (catalog order)",
		Example: strings.TrimSpace(`
gallery entries list
gallery entries list --category landscape
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			active := model.NormalizeCategory(category)
			if active == "" {
				active = model.CategoryAll
			}
			entries := gallery.Filter(src.Entries, active)

			hints := []string{"gallery entries show <id>"}
			if len(entries) == 0 {
				hints = append(hints, "gallery categories")
			}
			return writeOut(cmd, app, map[string]any{
				"data": entries,
				"meta": map[string]any{
					"category": active,
					"count":    len(entries),
					"total":    len(src.Entries),
				},
				"_hints": hints,
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", string(model.CategoryAll), "Category filter (all shows every entry)")
	return cmd
}

func newEntriesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid entry id %q", args[0]))
			}
			e, ok := gallery.Find(src.Entries, id)
			if !ok {
				return writeErr(cmd, errNotFound("entry", args[0]))
			}
			return writeOut(cmd, app, map[string]any{
				"data": e,
				"_hints": []string{
					fmt.Sprintf("gallery browse --open %d", e.ID),
					fmt.Sprintf("gallery entries list --category %s", e.Category),
				},
			})
		},
	}
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List filter categories with entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   gallery.CountCategories(src.Categories, src.Entries),
				"_hints": []string{"gallery entries list --category <id>"},
			})
		},
	}
}
