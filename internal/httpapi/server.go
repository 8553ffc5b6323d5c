// Package httpapi exposes the turn service over HTTP and converts every
// failure into a structured response at the turn boundary.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/apaise/internal/chat"
	"github.com/alexanderramin/apaise/internal/gateway"
)

// Server serves the turn endpoint.
type Server struct {
	svc *chat.Service
	log *zap.Logger
	mux *http.ServeMux
}

// NewServer wires the routes.
func NewServer(svc *chat.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{svc: svc, log: log, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /api/turn", s.handleTurn)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the route handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully with a deadline.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}
	req.Origin = clientOrigin(r)

	resp, err := s.svc.HandleTurn(r.Context(), req)
	if err != nil {
		s.writeTurnError(w, err)
		return
	}

	s.log.Info("turn handled",
		zap.String("crisis", string(resp.Crisis)),
		zap.Duration("duration", time.Since(start)))
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeTurnError maps turn failures to the error taxonomy: malformed
// requests never touched the session, gateway failures become a
// service-unavailable outcome, everything else is internal.
func (s *Server) writeTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrNoUtterance):
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "request carries no user message"})
	case errors.Is(err, gateway.ErrTimeout):
		s.writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: "service unavailable"})
	case errors.Is(err, gateway.ErrUnavailable), errors.Is(err, gateway.ErrEmptyCompletion):
		s.writeJSON(w, http.StatusBadGateway, errorBody{Error: "service unavailable"})
	default:
		s.log.Error("turn failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("writing response", zap.Error(err))
	}
}

// clientOrigin identifies the caller for session-key fallback: the first
// forwarded address when behind a proxy, otherwise the remote host.
func clientOrigin(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
