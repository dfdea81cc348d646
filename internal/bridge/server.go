// Package bridge implements the HTTP server that lives inside the host
// process and executes registered handlers against the live modeling session.
// Dispatch never crashes the host: every failure mode maps to a JSON envelope
// with an appropriate status code, and handler panics are contained at the
// dispatch boundary.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hzargar/rhino-gh-bridge/internal/common"
	"github.com/hzargar/rhino-gh-bridge/internal/config"
	"github.com/hzargar/rhino-gh-bridge/internal/host"
	"github.com/hzargar/rhino-gh-bridge/internal/registry"
)

// maxBodySize limits request bodies. Tool payloads are small parameter maps.
const maxBodySize = 1 << 20 // 1MB

// Server is the dispatch bridge.
type Server struct {
	cfg      *config.Config
	registry *registry.Registry
	host     host.Adapter
	logger   *common.Logger

	httpServer *http.Server
	listener   net.Listener

	// hostMu serializes handler execution. The host document is
	// single-threaded; two handlers must never touch it concurrently.
	hostMu sync.Mutex
}

// New creates a bridge server over the given handler registry and host adapter.
func New(cfg *config.Config, reg *registry.Registry, adapter host.Adapter, logger *common.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		registry: reg,
		host:     adapter,
		logger:   logger,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Bridge.Host, cfg.Bridge.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(http.HandlerFunc(s.dispatch)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start binds the listen address and serves requests on a background
// goroutine, leaving the caller's thread (the host's main loop) free. Bind
// errors surface synchronously.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("bridge server failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	s.logger.Info().
		Str("address", s.httpServer.Addr).
		Int("endpoints", len(s.registry.Handlers())).
		Msg("bridge server starting")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Str("error", err.Error()).Msg("bridge server failed")
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("shutting down bridge server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("bridge server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("bridge server stopped")
	return nil
}

// Addr returns the bound listen address, valid after Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// dispatch routes one request through the state machine:
// Received -> Routed -> Executed -> Responded, or the 404/400/500 detours.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)

	case http.MethodGet, http.MethodHead:
		switch r.URL.Path {
		case "/status":
			s.writeStatus(w)
		case "/info":
			s.writeInfo(w)
		default:
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown endpoint: %s", r.URL.Path))
		}

	case http.MethodPost:
		s.dispatchPost(w, r)

	default:
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed", r.Method))
	}
}

func (s *Server) dispatchPost(w http.ResponseWriter, r *http.Request) {
	hd, ok := s.registry.Handler(r.URL.Path)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown endpoint: %s", r.URL.Path))
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	// Empty body means an empty argument map; anything else must be JSON.
	body := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
	}

	// Schema violations are logical failures: the body parsed, the values
	// don't fit the handler's contract. HTTP 200 with success:false keeps
	// them distinguishable from protocol errors.
	if violations := s.registry.ValidateBody(hd.Endpoint, body); violations != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":           false,
			"error":             fmt.Sprintf("invalid arguments for %s", hd.Endpoint),
			"validation_errors": violations,
		})
		return
	}

	result, err := s.execute(r.Context(), hd, body)
	if err != nil {
		s.logger.Error().Str("endpoint", hd.Endpoint).Str("error", err.Error()).Msg("handler fault")
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// execute runs one handler under the host lock, converting panics to errors
// so a handler bug can never take down the host process.
func (s *Server) execute(ctx context.Context, hd registry.HandlerDescriptor, body map[string]any) (result map[string]any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()

	s.hostMu.Lock()
	defer s.hostMu.Unlock()
	return hd.Handle(ctx, body)
}

func (s *Server) writeStatus(w http.ResponseWriter) {
	caps := s.host.Probe()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                "running",
		"rhino_available":       caps.RhinoAvailable,
		"grasshopper_available": caps.GrasshopperAvailable,
		"message":               "Rhino bridge server is running",
	})
}

func (s *Server) writeInfo(w http.ResponseWriter) {
	endpoints := []map[string]string{
		{"path": "/status", "method": "GET", "description": "Server status"},
		{"path": "/info", "method": "GET", "description": "Server information"},
	}
	for _, hd := range s.registry.Handlers() {
		endpoints = append(endpoints, map[string]string{
			"path":        hd.Endpoint,
			"method":      "POST",
			"description": hd.Description,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":      "Rhino HTTP Bridge Server",
		"version":   config.GetVersion(),
		"endpoints": endpoints,
	})
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success":     false,
		"error":       message,
		"status_code": statusCode,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// setCORSHeaders attaches permissive CORS headers to every response so
// browser-based callers (e.g. a canvas inspector page) can reach the bridge.
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
