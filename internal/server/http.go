package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zeroapi/zeroapi/internal/landing"
	"github.com/zeroapi/zeroapi/internal/logging"
	"github.com/zeroapi/zeroapi/internal/urls"
	"github.com/zeroapi/zeroapi/internal/version"
)

// Landing page width limits for ?width=
const (
	defaultPageWidth = 100
	minPageWidth     = 40
	maxPageWidth     = 200
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Terminal clients connect from anywhere the page is embedded.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler returns the HTTP handler with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get(urls.Home, s.handleLanding)
	r.Get(urls.Login, s.handleLogin)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// logRequests logs each request and counts it by route pattern.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// Hijacked for WebSocket
			status = http.StatusSwitchingProtocols
		}

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, status)
	})
}

// handleLanding renders the landing page as plain text.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	lang := s.config.Language
	if q := r.URL.Query().Get("lang"); q != "" {
		parsed, err := landing.ParseLanguage(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		lang = parsed
	}

	width := defaultPageWidth
	if q := r.URL.Query().Get("width"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < minPageWidth || n > maxPageWidth {
			http.Error(w, "width must be a number between 40 and 200", http.StatusBadRequest)
			return
		}
		width = n
	}

	page := landing.Render(plainStyles(), landing.Page{Width: width, Language: lang})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, page+"\n")
}

// plainStyles returns landing styles that emit no escape sequences.
func plainStyles() landing.Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return landing.NewStyles(r)
}

// handleLogin upgrades to WebSocket and runs a terminal session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an error response.
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	id := uuid.NewString()
	s.wg.Add(1)
	defer s.wg.Done()

	sess := newSession(id, conn, s.machine, s.metrics)
	s.trackSession(id, r.RemoteAddr)
	logging.LogConnection(r.RemoteAddr, "session_opened")
	defer func() {
		_ = conn.Close()
		<-sess.readDone
		s.untrackSession(id)
		logging.LogConnection(r.RemoteAddr, "session_closed")
	}()

	if err := sess.run(s.sessionCtx); err != nil {
		logging.Info("Session ended with error",
			zap.String("session", id),
			zap.Error(err),
		)
	}
}

type healthResponse struct {
	Status   string       `json:"status"`
	Build    version.Info `json:"build"`
	Sessions int          `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:   "ok",
		Build:    version.Get(),
		Sessions: s.ActiveSessions(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error("Health response encode failed", zap.Error(err))
	}
}
