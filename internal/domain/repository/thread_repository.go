package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

// ThreadMutation edits a thread in place while the repository holds its lock.
// Returning an error discards the edit.
type ThreadMutation func(thread *entity.MessageThread) error

type ThreadRepository interface {
	// FindOrCreate returns the thread for candidate's participant pair,
	// storing candidate only when no such thread exists yet.
	FindOrCreate(ctx context.Context, candidate *entity.MessageThread) (*entity.MessageThread, bool, error)
	GetByID(ctx context.Context, id string) (*entity.MessageThread, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.MessageThread, error)
	ListByListingID(ctx context.Context, listingID string) ([]*entity.MessageThread, error)
	Mutate(ctx context.Context, id string, mutate ThreadMutation) (*entity.MessageThread, error)
}
