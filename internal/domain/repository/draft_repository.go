package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type DraftRepository interface {
	Save(ctx context.Context, draft *entity.DraftListing) error
	GetByUserID(ctx context.Context, userID string) (*entity.DraftListing, error)
	Delete(ctx context.Context, userID string) error
}
