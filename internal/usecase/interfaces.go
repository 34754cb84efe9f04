package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"campusmarket/internal/domain/entity"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/pkg/logger"
)

// Publisher pushes frames to a user's open connections.
type Publisher interface {
	SendToUser(userID string, message []byte)
}

// Notifier raises notifications as a side effect of store mutations.
type Notifier interface {
	Notify(ctx context.Context, input NotifyInput) (*entity.Notification, error)
}

// DraftClearer discards a user's in-progress listing.
type DraftClearer interface {
	ClearDraft(ctx context.Context, userID string) error
}

// NopPublisher drops every frame.
type NopPublisher struct{}

func (NopPublisher) SendToUser(string, []byte) {}

func publish(p Publisher, userID, messageType string, data interface{}) {
	frame, err := ws.Encode(messageType, data)
	if err != nil {
		logger.Error("publish: failed to encode %s for %s: %v", messageType, userID, err)
		return
	}
	p.SendToUser(userID, frame)
}

// newSortableID is used where ids double as a creation order.
func newSortableID() string {
	return ulid.Make().String()
}

func newID() string {
	return uuid.New().String()
}
