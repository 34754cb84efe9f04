package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type memoryThreadRepository struct {
	mu      sync.RWMutex
	threads map[string]*entity.MessageThread
	byPair  map[string]string
}

func NewMemoryThreadRepository() repository.ThreadRepository {
	return &memoryThreadRepository{
		threads: make(map[string]*entity.MessageThread),
		byPair:  make(map[string]string),
	}
}

func (r *memoryThreadRepository) FindOrCreate(ctx context.Context, candidate *entity.MessageThread) (*entity.MessageThread, bool, error) {
	key := candidate.PairKey()
	if key == "" {
		return nil, false, errors.BadRequest("A thread needs exactly two participants", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byPair[key]; ok {
		return r.threads[id].Clone(), false, nil
	}

	thread := candidate.Clone()
	if thread.ID == "" {
		thread.ID = uuid.New().String()
	}
	now := time.Now()
	if thread.CreatedAt.IsZero() {
		thread.CreatedAt = now
	}
	if thread.LastMessageAt.IsZero() {
		thread.LastMessageAt = now
	}
	if thread.Messages == nil {
		thread.Messages = []entity.Message{}
	}

	r.threads[thread.ID] = thread
	r.byPair[key] = thread.ID
	return thread.Clone(), true, nil
}

func (r *memoryThreadRepository) GetByID(ctx context.Context, id string) (*entity.MessageThread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	thread, ok := r.threads[id]
	if !ok {
		return nil, errors.NotFound("Thread", nil)
	}
	return thread.Clone(), nil
}

func (r *memoryThreadRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.MessageThread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.MessageThread{}
	for _, thread := range r.threads {
		if thread.HasParticipant(userID) {
			out = append(out, thread.Clone())
		}
	}
	return out, nil
}

func (r *memoryThreadRepository) ListByListingID(ctx context.Context, listingID string) ([]*entity.MessageThread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.MessageThread{}
	for _, thread := range r.threads {
		if thread.Listing != nil && thread.Listing.ID == listingID {
			out = append(out, thread.Clone())
		}
	}
	return out, nil
}

func (r *memoryThreadRepository) Mutate(ctx context.Context, id string, mutate repository.ThreadMutation) (*entity.MessageThread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	thread, ok := r.threads[id]
	if !ok {
		return nil, errors.NotFound("Thread", nil)
	}

	working := thread.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	r.threads[id] = working
	return working.Clone(), nil
}
