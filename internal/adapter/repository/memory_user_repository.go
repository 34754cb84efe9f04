package repository

import (
	"context"
	"sort"
	"sync"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewMemoryUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*entity.User),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		return errors.BadRequest("User id is required", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return errors.Conflict("User " + user.ID + " already exists")
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	out := *u
	return &out, nil
}

func (r *memoryUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
