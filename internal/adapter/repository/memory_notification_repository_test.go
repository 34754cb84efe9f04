package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

func TestNotificationRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNotificationRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "old", UserID: "u", CreatedAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "tie1", UserID: "u", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "tie2", UserID: "u", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "other", UserID: "v", CreatedAt: now}))

	list, err := repo.ListByUserID(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "tie2", list[0].ID)
	assert.Equal(t, "tie1", list[1].ID)
	assert.Equal(t, "old", list[2].ID)
}

func TestNotificationRepositoryReadAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNotificationRepository()
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n", UserID: "u"}))

	require.NoError(t, repo.MarkAsRead(ctx, "n"))
	n, err := repo.GetByID(ctx, "n")
	require.NoError(t, err)
	assert.True(t, n.Read)

	require.NoError(t, repo.Delete(ctx, "n"))
	_, err = repo.GetByID(ctx, "n")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.True(t, errors.Is(repo.MarkAsRead(ctx, "n"), errors.CodeNotFound))
}
