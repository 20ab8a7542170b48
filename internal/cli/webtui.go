package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"photo-gallery/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the gallery TUI in your browser (PTY + WebSocket)",
		Long: strings.TrimSpace(`
Run the terminal gallery over the web via a server-side PTY and a browser
terminal emulator.

Notes:
- No auth; bind to localhost.
- Each browser tab starts a TUI subprocess on the server.
`),
		Example: strings.TrimSpace(`
# Serve on localhost
gallery webtui --addr 127.0.0.1:3334
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if !cmd.Flags().Changed("addr") {
				listenAddr = app.cfg.WebTUI.Addr
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("webtui: missing --addr"))
			}

			log, closeLog, err := newLogger(app.cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeLog() }()

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:        listenAddr,
				ConfigPath:  app.ConfigPath,
				CatalogPath: app.CatalogPath,
				Title:       app.cfg.Site.Title,
				Log:         log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", srv.Addr())
			if err != nil {
				return writeErr(cmd, err)
			}
			actualAddr := ln.Addr().String()

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"config":    app.ConfigPath,
					"catalog":   app.CatalogPath,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{
					"open http://" + actualAddr,
				},
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "Gallery webtui running at http://%s\n", actualAddr)

			hs := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			go func() {
				<-cmd.Context().Done()
				_ = hs.Close()
			}()
			if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3334", "Bind address (host:port or :port; default from webtui.addr)")
	return cmd
}
