package webtui

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"
)

const (
	ptyBufSize    = 32 * 1024
	writeTimeout  = 10 * time.Second
	initialCols   = 120
	initialRows   = 40
	maxWindowSide = 1000
)

// control is a JSON text frame from the browser. Everything else is input.
type control struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  ptyBufSize,
	WriteBufferSize: ptyBufSize,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header (non-browser clients)
// and browser requests whose Origin host:port equals the request Host.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// terminal is one browser tab attached to one gallery TUI process.
type terminal struct {
	conn *websocket.Conn
	ptmx *os.File
	cmd  *exec.Cmd

	closeOnce sync.Once
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		s.log.Debug("ws upgrade", "err", err)
		return
	}

	cmd, err := s.cfg.Command()
	if err == nil {
		cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")
	}
	var ptmx *os.File
	if err == nil {
		ptmx, err = pty.StartWithSize(cmd, &pty.Winsize{Cols: initialCols, Rows: initialRows})
	}
	if err != nil {
		s.log.Warn("gallery terminal", "err", err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start gallery: "+err.Error()+"\r\n"))
		_ = conn.Close()
		return
	}

	t := &terminal{conn: conn, ptmx: ptmx, cmd: cmd}
	s.log.Info("terminal attached", "pid", cmd.Process.Pid, "remote", r.RemoteAddr)

	done := make(chan struct{}, 2)
	go func() { t.output(); done <- struct{}{} }()
	go func() { t.input(); done <- struct{}{} }()

	// Either side ending (TUI quit, tab closed) ends both.
	<-done
	t.close()
	<-done
	s.log.Info("terminal detached", "pid", cmd.Process.Pid)
}

// output copies TUI screen updates to the browser.
func (t *terminal) output() {
	buf := make([]byte, ptyBufSize)
	for {
		n, err := t.ptmx.Read(buf)
		if n > 0 {
			_ = t.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if werr := t.conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// input forwards keystrokes to the TUI and applies resize requests.
func (t *terminal) input() {
	for {
		mt, data, err := t.conn.ReadMessage()
		if err != nil {
			return
		}
		if len(data) == 0 {
			continue
		}
		if mt == websocket.TextMessage && data[0] == '{' {
			var c control
			if json.Unmarshal(data, &c) == nil {
				t.apply(c)
			}
			continue
		}
		if _, err := t.ptmx.Write(data); err != nil {
			return
		}
	}
}

func (t *terminal) apply(c control) {
	if !strings.EqualFold(strings.TrimSpace(c.Type), "resize") {
		return
	}
	if c.Cols <= 0 || c.Rows <= 0 || c.Cols > maxWindowSide || c.Rows > maxWindowSide {
		return
	}
	_ = pty.Setsize(t.ptmx, &pty.Winsize{Cols: uint16(c.Cols), Rows: uint16(c.Rows)})
}

// close stops the TUI process and unblocks both copy loops.
func (t *terminal) close() {
	t.closeOnce.Do(func() {
		_ = t.cmd.Process.Kill()
		_ = t.conn.Close()
		_ = t.ptmx.Close()
		_, _ = t.cmd.Process.Wait()
	})
}
