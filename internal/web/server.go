package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/henri123lemoine/aligns/internal/config"
	"github.com/henri123lemoine/aligns/internal/dataset"
	"github.com/henri123lemoine/aligns/internal/log"
	"github.com/henri123lemoine/aligns/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

const (
	shutdownTimeout  = 5 * time.Second
	maxSweepInterval = time.Minute
)

// Server serves the dashboard over HTTP. Each browser gets its own router
// session, keyed by a cookie. The dataset is shared read-only.
type Server struct {
	cfg   *config.Config
	table *dataset.Table
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	sess     *view.Session
	lastSeen time.Time
}

// New creates a Server over tbl.
func New(cfg *config.Config, tbl *dataset.Table) *Server {
	return &Server{
		cfg:      cfg,
		table:    tbl,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /navigate", s.handleNavigate)
	mux.HandleFunc("GET /chart/{file}", s.handleChart)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return logRequests(mux)
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepLoop(sweepCtx)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("server stopped")
		return nil
	}
}

// Sessions returns the number of live browser sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweepLoop drops idle sessions until ctx is done. A zero idle timeout
// keeps sessions for the life of the process.
func (s *Server) sweepLoop(ctx context.Context) {
	idle := s.cfg.SessionIdle()
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(min(idle, maxSweepInterval))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(s.now(), idle); n > 0 {
				slog.Debug("expired sessions", "count", n, "live", s.Sessions())
			}
		}
	}
}

// sweep removes sessions not seen within idle of now and returns how many
// were removed.
func (s *Server) sweep(now time.Time, idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) >= idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// session returns the caller's router session, starting a new one (and
// setting the cookie) when the request carries none or an unknown ID.
// Callers must hold s.mu.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *view.Session {
	now := s.now()
	name := s.cfg.Server.SessionCookie
	if c, err := r.Cookie(name); err == nil {
		if e, ok := s.sessions[c.Value]; ok {
			e.lastSeen = now
			return e.sess
		}
	}

	id := uuid.NewString()
	sess := s.cfg.NewSession()
	s.sessions[id] = &sessionEntry{sess: sess, lastSeen: now}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Debug("new session", "id", id)
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess := s.session(w, r)
	if r.URL.Query().Has("variable") {
		sess.Select(r.URL.Query().Get("variable"))
	}
	page := view.Build(sess, s.table)
	s.mu.Unlock()

	data := s.pageData(page)
	var buf strings.Builder
	done := log.Timed("render page")
	err := pageTemplate.Execute(&buf, data)
	done()
	if err != nil {
		slog.Error("render page", "view", page.View.Slug(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	target := r.PostForm.Get("view")
	if target == "" {
		http.Error(w, "missing view", http.StatusBadRequest)
		return
	}

	// Unknown targets fall back to Home inside the router.
	v, _ := view.Parse(target)
	in := view.Intent{Source: view.ParseSource(r.PostForm.Get("source")), Target: v}

	s.mu.Lock()
	sess := s.session(w, r)
	changed := sess.Navigate(in)
	current := sess.Current()
	s.mu.Unlock()

	slog.Debug("navigate", "intent", in.String(), "changed", changed, "current", current.Slug())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	slug, ok := strings.CutSuffix(r.PathValue("file"), ".svg")
	if !ok {
		http.NotFound(w, r)
		return
	}
	v, ok := view.Parse(slug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	page := view.Build(view.NewSession(view.ModeUnified, v), s.table)
	block := chartBlock(page)
	if block == nil {
		http.NotFound(w, r)
		return
	}

	// The page already carries the heading, so the SVG has no title and
	// views sharing a chart serve identical bytes.
	var buf strings.Builder
	if err := renderChart(&buf, "", block.Chart); err != nil {
		slog.Error("render chart", "view", v.Slug(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(buf.String()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func chartBlock(page view.Page) *view.Block {
	for i := range page.Blocks {
		if page.Blocks[i].Kind == view.BlockChart {
			return &page.Blocks[i]
		}
	}
	return nil
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}
