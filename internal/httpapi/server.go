// Package httpapi exposes the running countdown over HTTP: a JSON snapshot,
// Prometheus metrics, recent log entries and a WebSocket snapshot stream.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/flipclock/internal/logger"
	"github.com/five82/flipclock/internal/state"
)

const (
	shutdownTimeout = 5 * time.Second
	defaultLogLines = 100
	maxLogLines     = 500
)

// Server serves the countdown API.
type Server struct {
	router  *gin.Engine
	store   *state.Store
	metrics http.Handler
	hub     *hub
}

// New builds the router. metricsHandler may be nil, in which case /metrics
// is not mounted.
func New(store *state.Store, metricsHandler http.Handler) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf("[PANIC RECOVERY] path=%s method=%s error=%v",
			c.Request.URL.Path, c.Request.Method, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	s := &Server{
		router:  r,
		store:   store,
		metrics: metricsHandler,
		hub:     newHub(store),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.GET("/countdown", s.handleCountdown)
	api.GET("/health", s.handleHealth)
	api.GET("/logs", s.handleLogs)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics))
	}
	s.router.GET("/ws", s.hub.handleConnection)
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) handleCountdown(c *gin.Context) {
	snap, ok := s.store.Snapshot()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "countdown not started"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleHealth(c *gin.Context) {
	snap, ok := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"started":    ok,
		"expired":    ok && snap.Expired(),
		"ws_clients": s.hub.clientCount(),
	})
}

func (s *Server) handleLogs(c *gin.Context) {
	n := defaultLogLines
	if raw := c.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = min(v, maxLogLines)
	}
	c.JSON(http.StatusOK, logger.Tail(n))
}
