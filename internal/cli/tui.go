package cli

import (
	"photo-gallery/internal/store"
	"photo-gallery/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the gallery in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	src, err := loadCatalog(app)
	if err != nil {
		return writeErr(cmd, err)
	}

	// The TUI owns the terminal: log to log.file or nowhere.
	log, closeLog, err := newLogger(app.cfg.Log, nil)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = closeLog() }()

	opts := tui.Options{
		Catalog:    src.Entries,
		Categories: src.Categories,
		Site:       app.cfg.Site,
		TUI:        app.cfg.TUI,
		Log:        log,
	}
	if app.cfg.TUI.Restore {
		if st, err := store.Default(); err == nil {
			opts.Store = &st
		} else {
			log.Warn("tui state disabled", "err", err)
		}
	}

	log.Info("tui start", "entries", len(src.Entries), "catalog", src.Path)
	if err := tui.Run(cmd.Context(), opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
