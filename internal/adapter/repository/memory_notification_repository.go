package repository

import (
	"context"
	"sort"
	"sync"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type memoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*entity.Notification
	seq           map[string]uint64
	next          uint64
}

func NewMemoryNotificationRepository() repository.NotificationRepository {
	return &memoryNotificationRepository{
		notifications: make(map[string]*entity.Notification),
		seq:           make(map[string]uint64),
	}
}

func (r *memoryNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notifications[notification.ID]; exists {
		return errors.Conflict("Notification " + notification.ID + " already exists")
	}
	stored := *notification
	r.notifications[notification.ID] = &stored
	r.next++
	r.seq[notification.ID] = r.next
	return nil
}

func (r *memoryNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	out := *n
	return &out, nil
}

func (r *memoryNotificationRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	// Insertion sequence breaks ties between equal timestamps.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out, nil
}

func (r *memoryNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return errors.NotFound("Notification", nil)
	}
	n.Read = true
	return nil
}

func (r *memoryNotificationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notifications[id]; !ok {
		return errors.NotFound("Notification", nil)
	}
	delete(r.notifications, id)
	delete(r.seq, id)
	return nil
}
