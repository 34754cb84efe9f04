package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

func newThread(a, b string) *entity.MessageThread {
	return &entity.MessageThread{
		Participants: []string{a, b},
		UnreadCount:  map[string]int{},
		Open:         map[string]bool{},
		Typing:       map[string]bool{},
	}
}

func TestFindOrCreateIsIdempotentPerPair(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryThreadRepository()

	first, created, err := repo.FindOrCreate(ctx, newThread("alex", "sarah"))
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.FindOrCreate(ctx, newThread("sarah", "alex"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	threads, _ := repo.ListByUserID(ctx, "alex")
	assert.Len(t, threads, 1)
}

func TestFindOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryThreadRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.FindOrCreate(ctx, newThread("alex", "sarah"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	threads, _ := repo.ListByUserID(ctx, "sarah")
	assert.Len(t, threads, 1)
}

func TestMutateAppliesAndRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryThreadRepository()
	thread, _, err := repo.FindOrCreate(ctx, newThread("alex", "sarah"))
	require.NoError(t, err)

	updated, err := repo.Mutate(ctx, thread.ID, func(t *entity.MessageThread) error {
		t.UnreadCount["sarah"] = 2
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.UnreadCount["sarah"])

	_, err = repo.Mutate(ctx, thread.ID, func(t *entity.MessageThread) error {
		t.UnreadCount["sarah"] = 9
		return errors.Forbidden("nope", nil)
	})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	stored, _ := repo.GetByID(ctx, thread.ID)
	assert.Equal(t, 2, stored.UnreadCount["sarah"])

	_, err = repo.Mutate(ctx, "missing", func(*entity.MessageThread) error { return nil })
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestFindOrCreateRejectsGroupThreads(t *testing.T) {
	repo := NewMemoryThreadRepository()
	_, _, err := repo.FindOrCreate(context.Background(), &entity.MessageThread{Participants: []string{"a"}})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
