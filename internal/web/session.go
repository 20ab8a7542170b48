package web

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"

	"github.com/google/uuid"
)

const sessionCookieName = "gallery_sid"

// session is one visitor's gallery state. All fields after mu are guarded by it.
type session struct {
	id   string
	hub  *resourceHub
	lock *gallery.Lock

	mu       sync.Mutex
	ctrl     *gallery.Controller
	menuOpen bool
	lastSeen time.Time
}

// sessionStore keeps visitor sessions in memory only. Idle sessions are
// evicted after ttl and their controllers torn down.
type sessionStore struct {
	catalog []model.GalleryEntry
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newSessionStore(catalog []model.GalleryEntry, ttl time.Duration, log *slog.Logger) *sessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &sessionStore{
		catalog:  catalog,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
		sessions: map[string]*session{},
		stopCh:   make(chan struct{}),
	}
}

func (st *sessionStore) newSession() *session {
	id := uuid.NewString()
	s := &session{id: id, hub: newResourceHub(), lastSeen: st.now()}
	s.lock = gallery.NewLock(func(locked bool) {
		st.log.Debug("scroll lock", "session", id, "locked", locked)
	})
	s.ctrl = gallery.NewController(st.catalog, s.lock)
	return s
}

// forRequest returns the visitor's session, creating one (and setting the
// cookie) when the request carries no live session id.
func (st *sessionStore) forRequest(w http.ResponseWriter, r *http.Request) *session {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if s := st.touch(c.Value); s != nil {
			return s
		}
	}

	s := st.newSession()
	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	st.log.Debug("session created", "session", s.id)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (st *sessionStore) touch(id string) *session {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	st.mu.Lock()
	s := st.sessions[id]
	st.mu.Unlock()
	if s == nil {
		return nil
	}
	s.mu.Lock()
	s.lastSeen = st.now()
	s.mu.Unlock()
	return s
}

// sweep evicts sessions idle for longer than ttl. Sessions with an open
// event stream are kept alive.
func (st *sessionStore) sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	var expired []*session
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle && s.hub.size() == 0 {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.mu.Lock()
		s.ctrl.Teardown()
		s.mu.Unlock()
		st.log.Debug("session evicted", "session", s.id)
	}
	return len(expired)
}

func (st *sessionStore) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-st.stopCh:
			return
		case <-t.C:
			st.sweep()
		}
	}
}

// close stops the janitor and tears down every session.
func (st *sessionStore) close() {
	st.stopOnce.Do(func() { close(st.stopCh) })

	st.mu.Lock()
	all := st.sessions
	st.sessions = map[string]*session{}
	st.mu.Unlock()

	for _, s := range all {
		s.mu.Lock()
		s.ctrl.Teardown()
		s.mu.Unlock()
	}
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	n := len(st.sessions)
	st.mu.Unlock()
	return n
}
