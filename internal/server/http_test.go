package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/gokatarajesh/bc-quiz/internal/config"
)

type staticRoutes struct{}

func (staticRoutes) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/hello", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func serve(srv *http.Server, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHTTPServerBaseRoutes(t *testing.T) {
	cfg := &config.App{HTTPAddr: ":0"}
	srv := NewHTTPServer(cfg, zerolog.New(io.Discard), staticRoutes{}, nil)

	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/v1/ping").Code)
	assert.Equal(t, http.StatusTeapot, serve(srv, http.MethodGet, "/v1/hello").Code)
	assert.Equal(t, http.StatusNotImplemented, serve(srv, http.MethodGet, "/ws/quiz").Code)
}

func TestHTTPServerPingFailure(t *testing.T) {
	cfg := &config.App{HTTPAddr: ":0"}
	down := PingFunc{Label: "redis", Fn: func(context.Context) error { return errors.New("down") }}
	srv := NewHTTPServer(cfg, zerolog.New(io.Discard), nil, nil, down)

	rec := serve(srv, http.MethodGet, "/v1/ping")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "service_unavailable")
}

func TestWSUpgraderOrigins(t *testing.T) {
	up := NewWSUpgrader([]string{"http://localhost:3000/"})

	req := httptest.NewRequest(http.MethodGet, "/ws/quiz", nil)
	assert.True(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, up.CheckOrigin(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, up.CheckOrigin(req))

	open := NewWSUpgrader([]string{"*"})
	assert.True(t, open.CheckOrigin(req))
}
