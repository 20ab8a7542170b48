package webtui

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

const (
	xtermCSS = "https://cdn.jsdelivr.net/npm/@xterm/xterm@5.5.0/css/xterm.css"
	xtermJS  = "https://cdn.jsdelivr.net/npm/@xterm/xterm@5.5.0/lib/xterm.js"
	xtermFit = "https://cdn.jsdelivr.net/npm/@xterm/addon-fit@0.10.0/lib/addon-fit.js"
)

type ServerConfig struct {
	Addr string
	// ConfigPath and CatalogPath are forwarded to the child gallery process.
	ConfigPath  string
	CatalogPath string
	Title       string

	// Command builds the process attached to each terminal. Nil runs this
	// executable's TUI.
	Command func() (*exec.Cmd, error)
	Log     *slog.Logger
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	log  *slog.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, tmpl: tmpl, log: cfg.Log}
	if s.cfg.Command == nil {
		s.cfg.Command = s.galleryCommand
	}
	return s, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/terminal", http.StatusFound)
	})
	r.Get("/terminal", s.handleTerminal)
	r.Get("/ws", s.handleWS)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get("/static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	r.Get("/static/app.js", s.handleStatic("static/app.js", "text/javascript; charset=utf-8"))
	return r
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

type terminalVM struct {
	Title    string
	XtermCSS string
	XtermJS  string
	XtermFit string
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(s.cfg.Title)
	if title == "" {
		title = "Photo Gallery"
	}
	vm := terminalVM{Title: title, XtermCSS: xtermCSS, XtermJS: xtermJS, XtermFit: xtermFit}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "terminal.html", vm); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// galleryCommand re-executes this binary's TUI with the same config and catalog.
func (s *Server) galleryCommand() (*exec.Cmd, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	args := []string{}
	if p := strings.TrimSpace(s.cfg.ConfigPath); p != "" {
		args = append(args, "--config", p)
	}
	if p := strings.TrimSpace(s.cfg.CatalogPath); p != "" {
		args = append(args, "--catalog", p)
	}
	args = append(args, "tui")
	return exec.Command(exe, args...), nil
}
