package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/zeroapi/zeroapi/internal/discovery"
	"github.com/zeroapi/zeroapi/internal/landing"
	"github.com/zeroapi/zeroapi/internal/logging"
	"github.com/zeroapi/zeroapi/internal/terminal"
	"github.com/zeroapi/zeroapi/internal/version"
)

// shutdownTimeout bounds how long Shutdown waits for sessions to end.
const shutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host string
	Port int

	// MDNS advertises the server on the local network.
	MDNS bool
	// Instance is the mDNS instance name. Defaults to "zeroapi-<hostname>".
	Instance string

	// Language is the landing page default when ?lang is absent.
	Language landing.Language

	// Registry receives the metrics. Defaults to a fresh registry.
	Registry *prometheus.Registry
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server serves the landing page and terminal sessions.
type Server struct {
	config   *Config
	machine  *terminal.Machine
	metrics  *Metrics
	registry *prometheus.Registry

	httpServer *http.Server
	listener   net.Listener
	ad         *discovery.Advertisement

	// sessionCtx is cancelled on shutdown; hijacked WebSocket connections
	// are not tracked by http.Server.
	sessionCtx    context.Context
	cancelSession context.CancelFunc

	wg       sync.WaitGroup
	mu       sync.Mutex
	sessions map[string]string // session id -> remote address
}

// New creates a new Server instance
func New(config *Config, machine *terminal.Machine) *Server {
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	if config.Language == "" {
		config.Language = landing.JavaScript
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:        config,
		machine:       machine,
		registry:      config.Registry,
		metrics:       NewMetrics(config.Registry),
		sessionCtx:    ctx,
		cancelSession: cancel,
		sessions:      make(map[string]string),
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start listens, serves and blocks until SIGINT/SIGTERM or a serve error.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.listener = listener
	addr := listener.Addr().String()

	logging.Info("Starting ZeroAPI terminal server",
		zap.String("addr", addr),
		zap.String("version", version.Version),
		zap.Bool("mdns", s.config.MDNS),
	)

	if s.config.MDNS {
		port := listener.Addr().(*net.TCPAddr).Port
		ad, err := discovery.Advertise(s.instanceName(), port, version.Version)
		if err != nil {
			// The server is still usable without discovery.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
		s.ad = ad
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		s.ad.Shutdown()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.ad.Shutdown()

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		logging.Error("Error shutting down HTTP server", zap.Error(err))
	}

	// End all WebSocket sessions
	s.cancelSession()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All sessions closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()

	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// ActiveSessions returns the number of connected terminal sessions
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) instanceName() string {
	if s.config.Instance != "" {
		return s.config.Instance
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "zeroapi"
	}
	return "zeroapi-" + host
}

func (s *Server) trackSession(id, remoteAddr string) {
	s.mu.Lock()
	s.sessions[id] = remoteAddr
	s.mu.Unlock()
	s.metrics.SessionsTotal.Inc()
	s.metrics.SessionsActive.Inc()
}

func (s *Server) untrackSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.metrics.SessionsActive.Dec()
}
