package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/bc-quiz/pkg/http/errors"
	ws "github.com/gokatarajesh/bc-quiz/pkg/http/ws"
)

// WSHandler drives one session per WebSocket connection. Messages from a
// connection are applied in order, one at a time.
type WSHandler struct {
	service  *Service
	hub      *ws.Hub
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

// NewWSHandler creates the live quiz handler.
func NewWSHandler(service *Service, hub *ws.Hub, upgrader *websocket.Upgrader, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		service:  service,
		hub:      hub,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "session_ws").Logger(),
	}
}

// HandleWebSocket upgrades GET /ws/quiz?token=... and serves the session.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Missing token")
		return
	}

	claims, err := h.service.Tokens().Validate(token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket token validation failed")
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid token")
		return
	}

	view, err := h.service.Get(r.Context(), claims.SessionID)
	if err != nil {
		status, code := errorStatus(err)
		httperrors.RespondError(w, status, code, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.serve(conn, claims.SessionID, view)
}

func (h *WSHandler) serve(conn *websocket.Conn, id uuid.UUID, first *View) {
	logger := h.logger.With().Str("session_id", id.String()).Logger()
	wsConn := ws.NewConnection(conn, logger)
	h.hub.Register(id, wsConn)
	defer h.hub.Unregister(id, wsConn)

	go wsConn.WritePump()

	if err := h.sendView(wsConn, first, ""); err != nil {
		logger.Warn().Err(err).Msg("initial view not sent")
	}

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(context.Background(), wsConn, id, msg)
	})
}

// handleMessage routes incoming WebSocket messages.
func (h *WSHandler) handleMessage(ctx context.Context, conn *ws.Connection, id uuid.UUID, msg ws.Message) error {
	var (
		view *View
		err  error
	)
	switch msg.Type {
	case ws.TypeAnswer:
		var req ws.AnswerPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(conn, msg.RequestID, httperrors.ErrCodeInvalidPayload, "Invalid answer payload")
		}
		view, err = h.service.Answer(ctx, id, string(req.Value))
	case ws.TypeRestart:
		view, err = h.service.Restart(ctx, id)
	case ws.TypeRequestPrompt:
		view, err = h.service.Get(ctx, id)
	default:
		return h.sendError(conn, msg.RequestID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}

	if err != nil {
		_, code := errorStatus(err)
		message := err.Error()
		if code == httperrors.ErrCodeInternalError {
			h.logger.Error().Err(err).Str("session_id", id.String()).Msg("ws message failed")
			message = "Internal error"
		}
		return h.sendError(conn, msg.RequestID, code, message)
	}
	return h.sendView(conn, view, msg.RequestID)
}

// sendView emits results once finished, the next prompt otherwise.
func (h *WSHandler) sendView(conn *ws.Connection, view *View, requestID string) error {
	msgType := ws.TypePrompt
	if view.Results != nil {
		msgType = ws.TypeResults
	}
	msg, err := ws.NewMessage(msgType, view)
	if err != nil {
		return err
	}
	msg.RequestID = requestID
	return conn.Send(msg)
}

func (h *WSHandler) sendError(conn *ws.Connection, requestID, code, message string) error {
	msg, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{Code: code, Message: message})
	if err != nil {
		return err
	}
	msg.RequestID = requestID
	if sendErr := conn.Send(msg); sendErr != nil {
		return errors.Join(errors.New(message), sendErr)
	}
	return nil
}
