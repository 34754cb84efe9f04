package repository

import (
	"context"
	"sync"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type memoryDraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]*entity.DraftListing
}

func NewMemoryDraftRepository() repository.DraftRepository {
	return &memoryDraftRepository{
		drafts: make(map[string]*entity.DraftListing),
	}
}

func (r *memoryDraftRepository) Save(ctx context.Context, draft *entity.DraftListing) error {
	if draft.UserID == "" {
		return errors.BadRequest("Draft owner is required", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *draft
	r.drafts[draft.UserID] = &stored
	return nil
}

func (r *memoryDraftRepository) GetByUserID(ctx context.Context, userID string) (*entity.DraftListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drafts[userID]
	if !ok {
		return nil, errors.NotFound("Draft", nil)
	}
	out := *d
	return &out, nil
}

// Delete is idempotent; discarding a missing draft is not an error.
func (r *memoryDraftRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, userID)
	return nil
}
