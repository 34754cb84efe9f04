package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

func TestListingRepositoryKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryListingRepository()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, &entity.Listing{ID: id, SellerID: "alex"}))
	}

	listings, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(listings))
}

func TestListingRepositoryRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryListingRepository()

	require.NoError(t, repo.Create(ctx, &entity.Listing{ID: "a"}))
	err := repo.Create(ctx, &entity.Listing{ID: "a"})
	assert.True(t, errors.Is(err, errors.CodeConflict))

	listings, _ := repo.List(ctx)
	assert.Len(t, listings, 1)
}

func TestListingRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryListingRepository()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &entity.Listing{ID: id}))
	}

	err := repo.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	listings, _ := repo.List(ctx)
	assert.Equal(t, []string{"a", "b", "c"}, ids(listings))

	require.NoError(t, repo.Delete(ctx, "a"))
	listings, _ = repo.List(ctx)
	assert.Equal(t, []string{"b", "c"}, ids(listings))

	// the index must follow the shifted slice
	got, err := repo.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)
}

func TestListingRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryListingRepository()
	require.NoError(t, repo.Create(ctx, &entity.Listing{ID: "a", Name: "Lamp"}))

	got, _ := repo.GetByID(ctx, "a")
	got.Name = "Changed"

	again, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, "Lamp", again.Name)
}

func ids(listings []*entity.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}
