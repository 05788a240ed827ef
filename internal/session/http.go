package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/quiz"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
	httperrors "github.com/gokatarajesh/bc-quiz/pkg/http/errors"
	ws "github.com/gokatarajesh/bc-quiz/pkg/http/ws"
)

// HTTPHandlers provides REST endpoints for quiz sessions.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for session endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "session_http").Logger(),
	}
}

// Register mounts the session routes on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/sessions", h.Start)
	mux.HandleFunc("GET /v1/sessions/{id}", h.Get)
	mux.HandleFunc("POST /v1/sessions/{id}/answers", h.Answer)
	mux.HandleFunc("POST /v1/sessions/{id}/restart", h.Restart)
	mux.HandleFunc("DELETE /v1/sessions/{id}", h.Close)
	mux.HandleFunc("GET /v1/rule-sets", h.ListRuleSets)
	mux.HandleFunc("GET /v1/methods", h.ListMethods)
}

// StartRequest is the optional body of POST /v1/sessions.
type StartRequest struct {
	RuleSet string `json:"rule_set"`
}

// StartResponse carries the session token alongside the first view.
type StartResponse struct {
	Token string `json:"token"`
	View  *View  `json:"view"`
}

// Start handles POST /v1/sessions
func (h *HTTPHandlers) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	view, token, err := h.service.Start(r.Context(), req.RuleSet)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusCreated, StartResponse{Token: token, View: view})
}

// Get handles GET /v1/sessions/{id}
func (h *HTTPHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, view)
}

// Answer handles POST /v1/sessions/{id}/answers
func (h *HTTPHandlers) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req ws.AnswerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	view, err := h.service.Answer(r.Context(), id, string(req.Value))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, view)
}

// Restart handles POST /v1/sessions/{id}/restart
func (h *HTTPHandlers) Restart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}
	view, err := h.service.Restart(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, view)
}

// Close handles DELETE /v1/sessions/{id}
func (h *HTTPHandlers) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}
	if err := h.service.Close(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RuleSetInfo describes a rule set to clients.
type RuleSetInfo struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Default     bool                 `json:"default"`
	Questions   []recommend.Question `json:"questions"`
}

// ListRuleSets handles GET /v1/rule-sets
func (h *HTTPHandlers) ListRuleSets(w http.ResponseWriter, r *http.Request) {
	engines := h.service.Engines()
	out := make([]RuleSetInfo, 0, len(recommend.Names()))
	for _, name := range recommend.Names() {
		engine, err := engines.Get(name)
		if err != nil {
			continue
		}
		rs := engine.RuleSet()
		out = append(out, RuleSetInfo{
			Name:        rs.Name,
			Description: rs.Description,
			Default:     rs.Name == engines.Default(),
			Questions:   rs.Questions,
		})
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{"rule_sets": out})
}

// ListMethods handles GET /v1/methods
func (h *HTTPHandlers) ListMethods(w http.ResponseWriter, r *http.Request) {
	engine, err := h.service.Engines().Get("")
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	methods := engine.Catalog().Methods()
	httperrors.RespondJSON(w, http.StatusOK, map[string][]catalog.Method{"methods": methods})
}

// authorize checks the bearer token against the {id} path segment.
func (h *HTTPHandlers) authorize(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidSession, "Invalid session id")
		return uuid.Nil, false
	}

	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "Missing bearer token")
		return uuid.Nil, false
	}

	claims, err := h.service.Tokens().Validate(token)
	if err != nil {
		code := httperrors.ErrCodeInvalidToken
		if errors.Is(err, ErrExpiredToken) {
			code = httperrors.ErrCodeTokenExpired
		}
		httperrors.RespondUnauthorized(w, code, err.Error())
		return uuid.Nil, false
	}
	if claims.SessionID != id {
		httperrors.RespondError(w, http.StatusForbidden, httperrors.ErrCodeForbidden, "Token does not belong to this session")
		return uuid.Nil, false
	}
	return id, true
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	switch status {
	case http.StatusNotFound:
		httperrors.RespondNotFound(w, code, err.Error())
	case http.StatusConflict:
		httperrors.RespondConflict(w, code, err.Error())
	case http.StatusBadRequest:
		httperrors.RespondBadRequest(w, code, err.Error())
	default:
		h.logger.Error().Err(err).Msg("session request failed")
		httperrors.RespondInternalError(w, "Internal error")
	}
}

// errorStatus maps service errors to HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, httperrors.ErrCodeSessionNotFound
	case errors.Is(err, ErrBusy):
		return http.StatusConflict, httperrors.ErrCodeSessionBusy
	case errors.Is(err, quiz.ErrWrongState):
		return http.StatusConflict, httperrors.ErrCodeWrongState
	case errors.Is(err, quiz.ErrInvalidAnswer):
		return http.StatusBadRequest, httperrors.ErrCodeInvalidAnswer
	case errors.Is(err, recommend.ErrUnknownRuleSet):
		return http.StatusBadRequest, httperrors.ErrCodeUnknownRuleSet
	default:
		return http.StatusInternalServerError, httperrors.ErrCodeInternalError
	}
}
