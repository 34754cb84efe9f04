package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	// List returns listings in insertion order.
	List(ctx context.Context) ([]*entity.Listing, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Listing, error)
	Delete(ctx context.Context, id string) error
}
