package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type NotificationConfig struct {
	// TTL is how long an untouched notification stays unread.
	TTL time.Duration
	// ClearDelay is the gap between auto-read and removal.
	ClearDelay time.Duration
	// ClickDelay is the gap between a click and removal.
	ClickDelay time.Duration
	// VisibleLimit caps how many unread notifications are surfaced at once.
	VisibleLimit int
}

func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		TTL:          5 * time.Second,
		ClearDelay:   time.Second,
		ClickDelay:   300 * time.Millisecond,
		VisibleLimit: 3,
	}
}

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	threadRepo       repository.ThreadRepository
	publisher        Publisher
	cfg              NotificationConfig

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	threadRepo repository.ThreadRepository,
	publisher Publisher,
	cfg NotificationConfig,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		threadRepo:       threadRepo,
		publisher:        publisher,
		cfg:              cfg,
		timers:           make(map[string]*time.Timer),
	}
}

type NotifyInput struct {
	UserID    string
	Type      string
	Title     string
	Message   string
	FromUser  string
	ThreadID  string
	ListingID string
}

type NotificationResponse struct {
	*entity.Notification
	TimeAgo string `json:"time_ago"`
}

func toNotificationResponse(n *entity.Notification) *NotificationResponse {
	return &NotificationResponse{
		Notification: n,
		TimeAgo:      humanize.Time(n.CreatedAt),
	}
}

func validNotificationType(t string) bool {
	switch t {
	case entity.NotificationMessage, entity.NotificationResponse, entity.NotificationSold, entity.NotificationPriceDrop:
		return true
	}
	return false
}

// Notify stores an unread notification for input.UserID, pushes it and arms
// its expiry.
func (uc *NotificationUseCase) Notify(ctx context.Context, input NotifyInput) (*entity.Notification, error) {
	if input.UserID == "" {
		return nil, errors.BadRequest("Notification recipient is required", nil)
	}
	if !validNotificationType(input.Type) {
		return nil, errors.BadRequest("Unknown notification type "+input.Type, nil)
	}

	notification := &entity.Notification{
		ID:        newID(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		FromUser:  input.FromUser,
		ThreadID:  input.ThreadID,
		ListingID: input.ListingID,
		CreatedAt: time.Now(),
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("Notify Error: Failed to store notification for %s: %v", input.UserID, err)
		return nil, err
	}

	publish(uc.publisher, notification.UserID, ws.MessageTypeNotification, toNotificationResponse(notification))
	uc.schedule(notification.ID, uc.cfg.TTL, func() { uc.expire(notification.ID) })

	return notification, nil
}

// Visible returns the unread notifications to surface, newest first.
func (uc *NotificationUseCase) Visible(ctx context.Context, userID string) ([]*NotificationResponse, error) {
	all, err := uc.notificationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []*NotificationResponse{}
	for _, n := range all {
		if n.Read {
			continue
		}
		if uc.cfg.VisibleLimit > 0 && len(out) == uc.cfg.VisibleLimit {
			break
		}
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// All returns every stored notification, read or not.
func (uc *NotificationUseCase) All(ctx context.Context, userID string) ([]*NotificationResponse, error) {
	all, err := uc.notificationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*NotificationResponse, len(all))
	for i, n := range all {
		out[i] = toNotificationResponse(n)
	}
	return out, nil
}

// Click marks the notification read, opens its thread if it has one, and
// clears it after the click delay.
func (uc *NotificationUseCase) Click(ctx context.Context, userID, id string) (*entity.Notification, error) {
	notification, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	uc.cancel(id)
	if err := uc.notificationRepo.MarkAsRead(ctx, id); err != nil {
		return nil, err
	}
	notification.Read = true

	if notification.ThreadID != "" {
		_, err := uc.threadRepo.Mutate(ctx, notification.ThreadID, func(t *entity.MessageThread) error {
			if !t.HasParticipant(userID) {
				return errors.Forbidden("User is not a participant in this thread", nil)
			}
			t.Open[userID] = true
			return nil
		})
		if err != nil {
			logger.Warn("Click Warning: could not open thread %s for %s: %v", notification.ThreadID, userID, err)
		}
	}

	uc.schedule(id, uc.cfg.ClickDelay, func() { uc.clear(id) })
	return notification, nil
}

// Dismiss marks the notification read and removes it at once.
func (uc *NotificationUseCase) Dismiss(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}

	uc.cancel(id)
	if err := uc.notificationRepo.MarkAsRead(ctx, id); err != nil {
		return err
	}
	return uc.notificationRepo.Delete(ctx, id)
}

// Close stops every pending timer. Notifications keep their current state.
func (uc *NotificationUseCase) Close() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.closed = true
	for id, t := range uc.timers {
		t.Stop()
		delete(uc.timers, id)
	}
}

func (uc *NotificationUseCase) owned(ctx context.Context, userID, id string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		logger.Warn("Notification %s requested by %s: %v", id, userID, err)
		return nil, err
	}
	if notification.UserID != userID {
		return nil, errors.Forbidden("Notification belongs to another user", nil)
	}
	return notification, nil
}

func (uc *NotificationUseCase) expire(id string) {
	if err := uc.notificationRepo.MarkAsRead(context.Background(), id); err != nil {
		return
	}
	// A click in the meantime owns the slot with its own delay.
	uc.scheduleIfIdle(id, uc.cfg.ClearDelay, func() { uc.clear(id) })
}

func (uc *NotificationUseCase) clear(id string) {
	if err := uc.notificationRepo.Delete(context.Background(), id); err != nil && !errors.Is(err, errors.CodeNotFound) {
		logger.Error("clear Error: Failed to remove notification %s: %v", id, err)
	}
}

// schedule replaces any pending timer for id.
func (uc *NotificationUseCase) schedule(id string, d time.Duration, fn func()) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.closed {
		return
	}
	if t, ok := uc.timers[id]; ok {
		t.Stop()
	}
	uc.arm(id, d, fn)
}

func (uc *NotificationUseCase) scheduleIfIdle(id string, d time.Duration, fn func()) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.closed {
		return
	}
	if _, ok := uc.timers[id]; ok {
		return
	}
	uc.arm(id, d, fn)
}

// arm must be called with mu held. A timer that fired after being
// replaced or cancelled does nothing.
func (uc *NotificationUseCase) arm(id string, d time.Duration, fn func()) {
	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		uc.mu.Lock()
		if uc.timers[id] != timer {
			uc.mu.Unlock()
			return
		}
		delete(uc.timers, id)
		uc.mu.Unlock()
		fn()
	})
	uc.timers[id] = timer
}

func (uc *NotificationUseCase) cancel(id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if t, ok := uc.timers[id]; ok {
		t.Stop()
		delete(uc.timers, id)
	}
}
