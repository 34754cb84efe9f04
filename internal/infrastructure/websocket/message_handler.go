package websocket

import (
	"context"
	"encoding/json"
	"time"

	"campusmarket/pkg/logger"
)

// Frame types exchanged over the socket.
const (
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeTyping        = "typing"
	MessageTypeMarkRead      = "mark_read"
	MessageTypeError         = "error"
	MessageTypeNewMessage    = "new_message"
	MessageTypeThreadUpdate  = "thread_update"
	MessageTypeNotification  = "notification"
	MessageTypeListingRemove = "listing_removed"
)

// WSMessage is the envelope of every frame in both directions.
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type TypingData struct {
	ThreadID string `json:"thread_id"`
	IsTyping bool   `json:"is_typing"`
}

type MarkReadData struct {
	ThreadID string `json:"thread_id"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// ClientEvents is what inbound frames act on.
type ClientEvents interface {
	SetTyping(ctx context.Context, userID, threadID string, isTyping bool) error
	MarkAsRead(ctx context.Context, userID, threadID string) error
}

// Encode builds an outbound frame.
func Encode(messageType string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{
		Type:      messageType,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleClientMessage processes incoming WebSocket messages
func (m *Manager) HandleClientMessage(ctx context.Context, client *Client, messageBytes []byte, events ClientEvents) {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		logger.Warn("WebSocket: Failed to unmarshal message from client %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	logger.Debug("WebSocket: Received message type '%s' from client %s", wsMessage.Type, client.UserID)

	switch wsMessage.Type {
	case MessageTypePing:
		m.sendToClient(client, MessageTypePong, struct{}{})

	case MessageTypeTyping:
		var data TypingData
		if err := json.Unmarshal(wsMessage.Data, &data); err != nil || data.ThreadID == "" {
			m.sendErrorToClient(client, "Invalid typing data")
			return
		}
		if err := events.SetTyping(ctx, client.UserID, data.ThreadID, data.IsTyping); err != nil {
			m.sendErrorToClient(client, err.Error())
		}

	case MessageTypeMarkRead:
		var data MarkReadData
		if err := json.Unmarshal(wsMessage.Data, &data); err != nil || data.ThreadID == "" {
			m.sendErrorToClient(client, "Invalid mark_read data")
			return
		}
		if err := events.MarkAsRead(ctx, client.UserID, data.ThreadID); err != nil {
			m.sendErrorToClient(client, err.Error())
		}

	default:
		logger.Warn("WebSocket: Unknown message type '%s' from client %s", wsMessage.Type, client.UserID)
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) sendToClient(client *Client, messageType string, data interface{}) {
	frame, err := Encode(messageType, data)
	if err != nil {
		logger.Error("WebSocket: Failed to encode %s frame: %v", messageType, err)
		return
	}

	// Send is closed once the client leaves the registry.
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if _, ok := m.clients[client.UserID][client]; !ok {
		return
	}
	select {
	case client.Send <- frame:
	default:
		logger.Warn("WebSocket: dropping %s frame for slow client %s", messageType, client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, message string) {
	m.sendToClient(client, MessageTypeError, ErrorData{Message: message})
}
