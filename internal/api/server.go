// Package api serves the request handlers over HTTP and WebSocket so a
// browser-based UI can reach them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jmylchreest/timetable/internal/bridge"
	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/watch"
)

// Event names pushed to WebSocket clients.
const (
	EventThemeChanged    = "theme_changed"
	EventScheduleChanged = "schedule_changed"
)

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

// Event is a server push message.
type Event struct {
	Event string `json:"event"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes Handlers over HTTP.
type Server struct {
	handlers *bridge.Handlers
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a Server for the given handlers.
func NewServer(handlers *bridge.Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		handlers: handlers,
		hub:      NewHub(),
		logger:   logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     checkOrigin,
	}
	return s
}

// Register adds the API routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/theme", s.handleTheme)
	mux.HandleFunc("/api/schedule", s.handleSchedule)
	mux.HandleFunc("/api/schedule/cell", s.handleCell)
	mux.HandleFunc("/api/invoke", s.handleInvoke)
	mux.HandleFunc("/api/ws", s.handleWS)
}

// Handler returns an http.Handler serving the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// Hub returns the WebSocket client hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// NotifyChange pushes a change event for kind to all WebSocket clients.
func (s *Server) NotifyChange(kind watch.Kind) {
	var event string
	switch kind {
	case watch.KindTheme:
		event = EventThemeChanged
	case watch.KindSchedule:
		event = EventScheduleChanged
	default:
		return
	}
	s.logger.Debug("broadcasting change", "event", event, "clients", s.hub.Len())
	s.hub.Broadcast(Event{Event: event})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http bridge listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http bridge stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, s.handlers.GetTheme())
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	data, err := s.handlers.GetSchedule()
	if err != nil {
		s.logger.Warn("get schedule failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPut+", "+http.MethodPost)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	args, err := bridge.DecodeSaveCellArgs(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.handlers.SaveCell(args.Row, args.Col, args.Value); err != nil {
		status := http.StatusInternalServerError
		if schedule.IsKind(err, schedule.KindRange) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("save cell failed", "row", args.Row, "col", args.Col, "error", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req bridge.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, s.handlers.Invoke(req))
}

// handleWS upgrades to a WebSocket. Clients send bridge requests and receive
// replies, plus change events pushed by NotifyChange.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	s.hub.Add(conn)
	s.logger.Debug("websocket client connected", "remote", r.RemoteAddr)

	defer func() {
		s.hub.Remove(conn)
		conn.Close()
		s.logger.Debug("websocket client disconnected", "remote", r.RemoteAddr)
	}()

	conn.SetReadLimit(maxBodySize)
	for {
		var req bridge.Request
		if err := conn.ReadJSON(&req); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				reply := bridge.Reply{ID: bridge.NewRequestID(), Error: "invalid request: " + err.Error()}
				if werr := s.hub.WriteJSON(conn, reply); werr != nil {
					return
				}
				continue
			}
			return
		}

		if err := s.hub.WriteJSON(conn, s.handlers.Invoke(req)); err != nil {
			return
		}
	}
}

// checkOrigin accepts requests without an Origin and origins on a loopback
// host or a non-http scheme (embedded webviews).
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return true
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	return u.Host == r.Host
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// writeJSON encodes v before writing the header, so an encoding failure is
// reported as a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Warn("writeJSON error", "error", err)
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "encode response: " + err.Error()})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("writeJSON write failed", "error", err)
	}
}
