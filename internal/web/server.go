package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"photo-gallery/internal/config"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

const defaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

type ServerConfig struct {
	Addr       string
	Catalog    []model.GalleryEntry
	Categories []model.CategoryDef
	Site       config.SiteConfig

	// MediaDir is where relative imageRefs live (usually the catalog file's directory).
	// Empty disables /media/.
	MediaDir string

	CORSOrigins []string
	SessionTTL  time.Duration

	// DatastarURL overrides the client bundle location.
	DatastarURL string
	Log         *slog.Logger
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	log  *slog.Logger

	defs   []model.CategoryDef
	labels map[model.Category]string
	// media maps entry ids to the local imageRefs served under /media/.
	media  map[int]string

	// about is the rendered site.about copy.
	about template.HTML

	sessions  *sessionStore
	closeOnce sync.Once
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.MediaDir = strings.TrimSpace(cfg.MediaDir)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	if strings.TrimSpace(cfg.DatastarURL) == "" {
		cfg.DatastarURL = defaultDatastarURL
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = gallery.DefaultCategories()
	}

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		tmpl:   tmpl,
		log:    cfg.Log,
		defs:   gallery.CategoriesFor(cfg.Categories, cfg.Catalog),
		labels: map[model.Category]string{},
		media:  map[int]string{},
	}
	for _, d := range s.defs {
		s.labels[d.ID] = d.Label
	}
	if s.about, err = renderAbout(cfg.Site.About); err != nil {
		s.log.Warn("about copy: markdown failed, serving plain text", "err", err)
		s.about = plainParagraphs(cfg.Site.About)
	}
	for _, e := range cfg.Catalog {
		if strings.HasPrefix(imageURL(e), "/media/") {
			s.media[e.ID] = strings.TrimSpace(e.ImageRef)
		}
	}
	s.sessions = newSessionStore(cfg.Catalog, cfg.SessionTTL, cfg.Log)
	go s.sessions.janitor(time.Minute)
	return s, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// Close tears down every visitor session, releasing their scroll locks.
func (s *Server) Close() error {
	s.closeOnce.Do(s.sessions.close)
	return nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/static/app.css", s.handleAppCSS)
	r.Get("/media/{id}/{name}", s.handleMedia)
	r.Get("/events", s.handleEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/", s.handleHome)
		r.Post("/filter/{category}", s.handleFilter)
		r.Post("/entries/{id}/open", s.handleOpen)
		r.Post("/lightbox/close", s.handleClose)
		r.Post("/lightbox/next", s.handleNext)
		r.Post("/lightbox/prev", s.handlePrev)
		r.Post("/keys/{key}", s.handleKey)
		r.Post("/menu/toggle", s.handleMenuToggle)
	})

	r.Route("/api", func(r chi.Router) {
		origins := s.cfg.CORSOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Get("/entries", s.handleAPIEntries)
		r.Get("/state", s.handleAPIState)
	})
	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"dur", time.Since(start),
				"req", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func isDatastarRequest(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("Datastar-Request")), "true")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// handleMedia serves the image of one catalog entry. Only refs named by the
// catalog are reachable; they resolve against MediaDir as written.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MediaDir == "" {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	ref, ok := s.media[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := filepath.FromSlash(ref)
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.cfg.MediaDir, p)
	}
	f, err := os.Open(p)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}

// handleHome renders the full page. ?category= and ?open= apply before
// rendering so the site works without JavaScript.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.forRequest(w, r)

	q := r.URL.Query()
	changed := false
	sess.mu.Lock()
	if c := strings.TrimSpace(q.Get("category")); c != "" {
		sess.ctrl.SetActiveCategory(model.NormalizeCategory(c))
		changed = true
	}
	if v := strings.TrimSpace(q.Get("open")); v != "" {
		if id, err := strconv.Atoi(v); err == nil && sess.ctrl.OpenID(id) {
			changed = true
		}
	}
	vm := pageVM{
		Site:        s.cfg.Site,
		About:       s.about,
		DatastarURL: s.cfg.DatastarURL,
		Main:        s.mainVMFor(sess),
	}
	sess.mu.Unlock()
	if changed {
		sess.hub.broadcast()
	}

	s.writeHTMLTemplate(w, "page", vm)
}

// act applies fn to the visitor's session and answers with a patch of
// #gallery-main (datastar) or a redirect home (plain form post).
func (s *Server) act(w http.ResponseWriter, r *http.Request, name string, fn func(sess *session) bool) {
	sess := s.sessions.forRequest(w, r)

	sess.mu.Lock()
	ok := fn(sess)
	sess.mu.Unlock()
	s.log.Debug("action", "session", sess.id, "action", name, "applied", ok)
	if ok {
		sess.hub.broadcast()
	}

	if !isDatastarRequest(r) {
		http.Redirect(w, r, "/#gallery", http.StatusSeeOther)
		return
	}
	html, locked, err := s.renderMain(sess)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
		return
	}
	_ = sse.PatchElements(html, datastar.WithSelector("#gallery-main"), datastar.WithMode(datastar.ElementPatchModeOuter))
	_ = sse.MarshalAndPatchSignals(map[string]any{"locked": locked})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	cat := model.NormalizeCategory(chi.URLParam(r, "category"))
	s.act(w, r, "filter", func(sess *session) bool {
		sess.ctrl.SetActiveCategory(cat)
		return true
	})
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimSpace(chi.URLParam(r, "id")))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}
	if _, ok := gallery.Find(s.cfg.Catalog, id); !ok {
		http.NotFound(w, r)
		return
	}
	s.act(w, r, "open", func(sess *session) bool {
		return sess.ctrl.OpenID(id)
	})
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "close", func(sess *session) bool {
		was := sess.ctrl.IsOpen()
		sess.ctrl.Close()
		return was
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "next", func(sess *session) bool { return sess.ctrl.Next() })
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "prev", func(sess *session) bool { return sess.ctrl.Prev() })
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	k := gallery.ParseKey(chi.URLParam(r, "key"))
	s.act(w, r, "key", func(sess *session) bool {
		return gallery.HandleKey(sess.ctrl, k)
	})
}

func (s *Server) handleMenuToggle(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, "menu", func(sess *session) bool {
		sess.menuOpen = !sess.menuOpen
		return true
	})
}

// handleEvents keeps #gallery-main in sync across a visitor's tabs.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.forRequest(w, r)
	ch, cancel := sess.hub.subscribe()
	defer cancel()

	sse := datastar.NewSSE(w, r)
	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			html, locked, err := s.renderMain(sess)
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector("#gallery-main"), datastar.WithMode(datastar.ElementPatchModeOuter))
			_ = sse.MarshalAndPatchSignals(map[string]any{"locked": locked})
		}
	}
}

func (s *Server) handleAPIEntries(w http.ResponseWriter, r *http.Request) {
	cat := model.CategoryAll
	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		cat = model.NormalizeCategory(v)
	}
	writeJSON(w, http.StatusOK, gallery.Filter(s.cfg.Catalog, cat))
}

func (s *Server) handleAPIState(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.forRequest(w, r)
	sess.mu.Lock()
	snap := sess.ctrl.Snapshot()
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snap)
}
