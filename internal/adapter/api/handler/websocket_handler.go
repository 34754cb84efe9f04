package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/response"
)

type WebSocketHandler struct {
	ctx            context.Context
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	events         ws.ClientEvents
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketHandler serves the push channel. ctx bounds every connection's
// lifetime; the request context ends as soon as the upgrade returns.
func NewWebSocketHandler(ctx context.Context, wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, events ws.ClientEvents) *WebSocketHandler {
	return &WebSocketHandler{
		ctx:            ctx,
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		events:         events,
	}
}

// HandleWebSocket authenticates with the token query parameter, since
// browsers cannot set headers on websocket requests.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	userID, err := h.authMiddleware.GetUIDFromToken(token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed for %s: %v", userID, err)
		return nil
	}

	client := ws.NewClient(userID, conn)
	select {
	case h.wsManager.Register <- client:
	case <-h.ctx.Done():
		conn.Close()
		return nil
	}

	go client.ReadPump(h.ctx, h.wsManager, h.events)
	go client.WritePump()

	return nil
}
