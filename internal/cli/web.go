package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"photo-gallery/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the gallery site over HTTP",
		Long: strings.TrimSpace(`
Serve the gallery as server-rendered HTML from a local HTTP server.

Filter, lightbox and menu actions are plain form posts; with the datastar
client loaded they are answered with SSE patches instead of full reloads.
Each browser gets its own in-memory session (cookie), shared across tabs.
`),
		Example: strings.TrimSpace(`
# Serve the built-in catalog on localhost
gallery web --addr 127.0.0.1:3335

# Serve a scanned catalog and open a browser
gallery --catalog ~/Pictures/gallery.yaml web --open
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := strings.TrimSpace(addr)
			if !cmd.Flags().Changed("addr") {
				listenAddr = app.cfg.Web.Addr
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}
			if !cmd.Flags().Changed("open") {
				open = app.cfg.Web.Open
			}

			log, closeLog, err := newLogger(app.cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeLog() }()

			srv, err := web.NewServer(web.ServerConfig{
				Addr:        listenAddr,
				Catalog:     src.Entries,
				Categories:  src.Categories,
				Site:        app.cfg.Site,
				MediaDir:    src.Dir,
				CORSOrigins: app.cfg.Web.CORSOrigins,
				SessionTTL:  app.cfg.Web.SessionTTL,
				Log:         log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			defer srv.Close()

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openPath(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			hints := []string{}
			if !opened {
				hints = append(hints, "open "+url)
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"catalog":   src.Path,
					"entries":   len(src.Entries),
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": hints,
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "Gallery web running at %s (%d entries)\n", url, len(src.Entries))
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

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

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3335", "Bind address (host:port or :port; default from web.addr)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the site in your default browser (default from web.open)")
	return cmd
}
