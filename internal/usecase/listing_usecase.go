package usecase

import (
	"context"
	"io"
	"time"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/utils"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	uploader    Uploader
}

func NewListingUseCase(listingRepo repository.ListingRepository, uploader Uploader) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		uploader:    uploader,
	}
}

type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Condition   string
	Category    string
	PostalCode  string
	Images      []string
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	if input.Price <= 0 {
		return nil, errors.BadRequest("Price must be positive", nil)
	}

	listing := &entity.Listing{
		SellerID:    sellerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Condition:   input.Condition,
		Category:    input.Category,
		PostalCode:  input.PostalCode,
		Images:      input.Images,
		Status:      entity.ListingAvailable,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// GetListing reflects lazy reservation expiry in the returned view: a
// reservation past its window reads as available without writing anything.
func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyLazyExpiry(listing, time.Now())

	return listing, nil
}

func (uc *ListingUseCase) ListListings(ctx context.Context, category, sellerID string, page, limit int) ([]*entity.Listing, int64, error) {
	filter := make(map[string]interface{})
	if category != "" {
		filter["category"] = category
	}
	if sellerID != "" {
		filter["sellerId"] = sellerID
	}

	pagination := utils.NewPaginationParams(page, limit)

	listings, total, err := uc.listingRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	for _, listing := range listings {
		applyLazyExpiry(listing, now)
	}

	return listings, total, nil
}

type UpdateListingInput struct {
	Title       string
	Description string
	Price       float64
	Images      []string
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, sellerID, listingID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can edit this listing", nil)
	}

	// Only the checkout flow touches status; edits are blocked once an
	// active reservation or sale exists.
	if !listing.Reservable(time.Now()) {
		return nil, errors.Conflict("Listing cannot be edited in its current status")
	}

	if input.Title != "" {
		listing.Title = input.Title
	}
	if input.Description != "" {
		listing.Description = input.Description
	}
	if input.Price > 0 {
		listing.Price = input.Price
	}
	if input.Images != nil {
		listing.Images = input.Images
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) BoostListing(ctx context.Context, sellerID, listingID, boostType string, duration time.Duration) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can boost this listing", nil)
	}

	if listing.Status == entity.ListingSold {
		return nil, errors.Conflict("Sold listings cannot be boosted")
	}

	ends := time.Now().Add(duration)
	listing.IsBoosted = true
	listing.BoostType = boostType
	listing.BoostEnds = &ends

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) UploadListingImage(ctx context.Context, file io.Reader, contentType string) (string, error) {
	url, err := uc.uploader.UploadFile(ctx, file, contentType, "listings", true)
	if err != nil {
		return "", errors.UploadFailed(err)
	}

	return url, nil
}

func applyLazyExpiry(listing *entity.Listing, now time.Time) {
	if listing.ReservationExpired(now) {
		listing.Status = entity.ListingAvailable
		listing.ReservedUntil = nil
	}
}
