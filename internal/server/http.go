package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/bc-quiz/internal/config"
	"github.com/gokatarajesh/bc-quiz/internal/logging"
	httperrors "github.com/gokatarajesh/bc-quiz/pkg/http/errors"
)

// Routes is implemented by handler groups that mount themselves on the mux.
type Routes interface {
	Register(mux *http.ServeMux)
}

// Pinger is a dependency checked by /v1/ping.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// NewWSUpgrader builds an upgrader that accepts the configured origins.
// Requests without an Origin header (non-browser clients) are allowed.
func NewWSUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			wildcard = true
		}
		allowed[o] = struct{}{}
	}

	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || wildcard {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			_, ok := allowed[u.Scheme+"://"+u.Host]
			return ok
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// NewHTTPServer wires base routes (health, metrics, ping) plus the quiz
// routes. wsHandler can be nil when live sessions are disabled.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, routes Routes, wsHandler http.HandlerFunc, deps ...Pinger) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, deps); err != nil {
			l := logging.FromContext(ctx)
			l.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeServiceUnavailable, "upstream error")
			return
		}
		httperrors.RespondJSON(w, http.StatusOK, map[string]bool{"pong": true})
	})

	if routes != nil {
		routes.Register(mux)
	}

	if wsHandler != nil {
		mux.HandleFunc("GET /ws/quiz", wsHandler)
	} else {
		mux.HandleFunc("GET /ws/quiz", func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondError(w, http.StatusNotImplemented, httperrors.ErrCodeServiceUnavailable, "live sessions disabled")
		})
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: requestLogger(logger, mux),
	}
}

func pingDependencies(ctx context.Context, deps []Pinger) error {
	for _, d := range deps {
		if err := d.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", d.Name(), err)
		}
	}
	return nil
}

// requestLogger attaches a request-scoped logger to every request context.
func requestLogger(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))
	})
}

// PingFunc adapts a function to Pinger.
type PingFunc struct {
	Label string
	Fn    func(ctx context.Context) error
}

func (p PingFunc) Name() string { return p.Label }

func (p PingFunc) Ping(ctx context.Context) error { return p.Fn(ctx) }
