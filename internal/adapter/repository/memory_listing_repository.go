package repository

import (
	"context"
	"sync"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type memoryListingRepository struct {
	mu       sync.RWMutex
	listings []*entity.Listing
	index    map[string]int
}

func NewMemoryListingRepository() repository.ListingRepository {
	return &memoryListingRepository{
		index: make(map[string]int),
	}
}

func (r *memoryListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		return errors.BadRequest("Listing id is required", nil)
	}
	if listing.PostedAt.IsZero() {
		listing.PostedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[listing.ID]; exists {
		return errors.Conflict("Listing " + listing.ID + " already exists")
	}

	stored := *listing
	r.index[listing.ID] = len(r.listings)
	r.listings = append(r.listings, &stored)
	return nil
}

func (r *memoryListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	listing := *r.listings[i]
	return &listing, nil
}

func (r *memoryListingRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		listing := *l
		out = append(out, &listing)
	}
	return out, nil
}

func (r *memoryListingRepository) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.Listing{}
	for _, l := range r.listings {
		if l.SellerID == sellerID {
			listing := *l
			out = append(out, &listing)
		}
	}
	return out, nil
}

func (r *memoryListingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return errors.NotFound("Listing", nil)
	}

	r.listings = append(r.listings[:i], r.listings[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.listings); j++ {
		r.index[r.listings[j].ID] = j
	}
	return nil
}
