package usecase

import (
	"context"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/utils"
)

type BrowseUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

func NewBrowseUseCase(listingRepo repository.ListingRepository, userRepo repository.UserRepository) *BrowseUseCase {
	return &BrowseUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// Browse projects the current listings through q and returns one page of the
// result along with the total number of matches.
func (uc *BrowseUseCase) Browse(ctx context.Context, q BrowseQuery, limit, offset int) ([]*entity.Listing, int64, error) {
	listings, err := uc.listingRepo.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	sellers := make(map[string]*entity.User, len(users))
	for _, u := range users {
		sellers[u.ID] = u
	}

	projected := Project(listings, sellers, q, uc.now())
	return utils.Paginate(projected, limit, offset), int64(len(projected)), nil
}
