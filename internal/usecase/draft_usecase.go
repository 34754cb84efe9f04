package usecase

import (
	"context"
	"sync"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/logger"
)

type DraftUseCase struct {
	draftRepo     repository.DraftRepository
	autosaveDelay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
}

func NewDraftUseCase(draftRepo repository.DraftRepository, autosaveDelay time.Duration) *DraftUseCase {
	return &DraftUseCase{
		draftRepo:     draftRepo,
		autosaveDelay: autosaveDelay,
		pending:       make(map[string]*time.Timer),
	}
}

func (uc *DraftUseCase) SaveDraft(ctx context.Context, userID string, fields entity.ListingFields) (*entity.DraftListing, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cancelLocked(userID)
	return uc.save(ctx, userID, fields)
}

// AutoSave debounces draft writes: only the last call inside the delay
// window is stored. A form with neither name nor description is ignored.
// It reports whether a save was scheduled.
func (uc *DraftUseCase) AutoSave(ctx context.Context, userID string, fields entity.ListingFields) bool {
	draft := entity.DraftListing{UserID: userID, ListingFields: fields}
	if draft.IsBlank() {
		return false
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.closed {
		return false
	}
	if t, ok := uc.pending[userID]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(uc.autosaveDelay, func() {
		uc.mu.Lock()
		if uc.pending[userID] != timer {
			uc.mu.Unlock()
			return
		}
		defer uc.mu.Unlock()
		delete(uc.pending, userID)

		// Held through the write so a later SaveDraft or ClearDraft lands last.
		if _, err := uc.save(context.Background(), userID, fields); err != nil {
			logger.Error("AutoSave Error: Failed to save draft for %s: %v", userID, err)
		}
	})
	uc.pending[userID] = timer
	return true
}

func (uc *DraftUseCase) GetDraft(ctx context.Context, userID string) (*entity.DraftListing, error) {
	return uc.draftRepo.GetByUserID(ctx, userID)
}

// ClearDraft discards the draft and any autosave still pending.
func (uc *DraftUseCase) ClearDraft(ctx context.Context, userID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.cancelLocked(userID)
	return uc.draftRepo.Delete(ctx, userID)
}

// Close stops pending autosaves.
func (uc *DraftUseCase) Close() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.closed = true
	for userID, t := range uc.pending {
		t.Stop()
		delete(uc.pending, userID)
	}
}

func (uc *DraftUseCase) save(ctx context.Context, userID string, fields entity.ListingFields) (*entity.DraftListing, error) {
	draft := &entity.DraftListing{
		UserID:        userID,
		ListingFields: fields,
		SavedAt:       time.Now(),
	}
	if err := uc.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (uc *DraftUseCase) cancelLocked(userID string) {
	if t, ok := uc.pending[userID]; ok {
		t.Stop()
		delete(uc.pending, userID)
	}
}
