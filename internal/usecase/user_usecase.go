package usecase

import (
	"context"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
)

type UserUseCase struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
}

func NewUserUseCase(userRepo repository.UserRepository, listingRepo repository.ListingRepository) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

type ProfileResponse struct {
	*entity.User
	ListingCount int `json:"listing_count"`
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings, err := uc.listingRepo.ListBySellerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{User: user, ListingCount: len(listings)}, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}
