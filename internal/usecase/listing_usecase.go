package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

const defaultListingImage = "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop"

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	threadRepo  repository.ThreadRepository
	drafts      DraftClearer
	notifier    Notifier
	publisher   Publisher
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	threadRepo repository.ThreadRepository,
	drafts DraftClearer,
	notifier Notifier,
	publisher Publisher,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		threadRepo:  threadRepo,
		drafts:      drafts,
		notifier:    notifier,
		publisher:   publisher,
	}
}

type CreateListingInput struct {
	entity.ListingFields
}

// CreateListing appends a new listing owned by sellerID and discards the
// seller's draft. Field validation happens before this call.
func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		logger.Warn("CreateListing Error: Seller %s not found: %v", sellerID, err)
		return nil, errors.BadRequest("Invalid seller", err)
	}

	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if description == "" {
		return nil, errors.BadRequest("Description is required", nil)
	}

	condition := entity.LookupCondition(input.Condition)
	imageSrc := input.ImageSrc
	if imageSrc == "" {
		imageSrc = defaultListingImage
	}
	imageAlt := input.ImageAlt
	if imageAlt == "" {
		imageAlt = name
	}

	listing := &entity.Listing{
		ID:             newSortableID(),
		Name:           name,
		Category:       input.Category,
		Condition:      condition.Label,
		ConditionColor: condition.Color,
		Price:          entity.FormatPrice(input.Price),
		OriginalPrice:  entity.FormatPrice(input.OriginalPrice),
		Description:    description,
		ImageSrc:       imageSrc,
		ImageAlt:       imageAlt,
		MeetupLocation: input.MeetupLocation,
		Dorm:           seller.Dorm,
		Seller:         seller.Name,
		SellerID:       seller.ID,
		PostedAt:       time.Now(),
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		logger.Error("CreateListing Error: Failed to store listing for %s: %v", sellerID, err)
		return nil, err
	}

	if err := uc.drafts.ClearDraft(ctx, sellerID); err != nil {
		logger.Warn("CreateListing Warning: Failed to clear draft for %s: %v", sellerID, err)
	}

	logger.Info("Listing %s created by %s", listing.ID, sellerID)
	return listing, nil
}

// ImportListing stores a catalog listing as-is, filling in derived fields.
func (uc *ListingUseCase) ImportListing(ctx context.Context, listing *entity.Listing) error {
	seller, err := uc.userRepo.GetByID(ctx, listing.SellerID)
	if err != nil {
		return err
	}

	if listing.ID == "" {
		listing.ID = newSortableID()
	}
	condition := entity.LookupCondition(listing.Condition)
	listing.Condition = condition.Label
	listing.ConditionColor = condition.Color
	listing.Price = entity.FormatPrice(listing.Price)
	listing.OriginalPrice = entity.FormatPrice(listing.OriginalPrice)
	listing.Seller = seller.Name
	if listing.Dorm == "" {
		listing.Dorm = seller.Dorm
	}
	if listing.ImageAlt == "" {
		listing.ImageAlt = listing.Name
	}

	return uc.listingRepo.Create(ctx, listing)
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

// ListListings returns the whole collection in insertion order.
func (uc *ListingUseCase) ListListings(ctx context.Context) ([]*entity.Listing, error) {
	return uc.listingRepo.List(ctx)
}

func (uc *ListingUseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Listing, error) {
	if _, err := uc.userRepo.GetByID(ctx, sellerID); err != nil {
		return nil, err
	}
	return uc.listingRepo.ListBySellerID(ctx, sellerID)
}

// DeleteListing removes the listing. Buyers who messaged about it are told
// it is gone.
func (uc *ListingUseCase) DeleteListing(ctx context.Context, userID, id string) error {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		logger.Warn("DeleteListing: listing %s not found for %s", id, userID)
		return err
	}
	if listing.SellerID != userID {
		return errors.Forbidden("You can only delete your own listings", nil)
	}

	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		logger.Error("DeleteListing Error: Failed to delete listing %s: %v", id, err)
		return err
	}

	threads, err := uc.threadRepo.ListByListingID(ctx, id)
	if err != nil {
		logger.Warn("DeleteListing Warning: could not look up threads for %s: %v", id, err)
		return nil
	}
	for _, thread := range threads {
		buyerID := thread.OtherParticipant(userID)
		if buyerID == "" {
			continue
		}
		_, err := uc.notifier.Notify(ctx, NotifyInput{
			UserID:    buyerID,
			Type:      entity.NotificationSold,
			Title:     "Listing no longer available",
			Message:   fmt.Sprintf("%s is no longer available", listing.Name),
			FromUser:  userID,
			ThreadID:  thread.ID,
			ListingID: listing.ID,
		})
		if err != nil {
			logger.Warn("DeleteListing Warning: failed to notify %s: %v", buyerID, err)
		}
		publish(uc.publisher, buyerID, ws.MessageTypeListingRemove, map[string]string{"listing_id": listing.ID})
	}

	return nil
}
