package cli

import (
	"errors"
	"os"
	"path/filepath"

	"photo-gallery/internal/config"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var yes bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file (interactive, or defaults with --yes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				path = config.DefaultPath
			}
			if _, err := os.Stat(path); err == nil && !force {
				return writeErr(cmd, errors.New("config already exists: "+path+" (pass --force to overwrite)"))
			}

			cfg := config.DefaultConfig()
			if !yes {
				c, err := config.RunWizard(cmd.ErrOrStderr())
				if err != nil {
					return writeErr(cmd, err)
				}
				cfg = c
			}
			if err := cfg.Validate(); err != nil {
				return writeErr(cmd, err)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := cfg.Save(path); err != nil {
				return writeErr(cmd, err)
			}

			hints := []string{"gallery", "gallery web"}
			if cfg.Catalog == "" {
				hints = append(hints, "gallery catalog scan <dir> --out catalog.yaml")
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path":    path,
					"catalog": cfg.Catalog,
					"title":   cfg.Site.Title,
				},
				"_hints": hints,
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip prompts and write defaults")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
