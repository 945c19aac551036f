package usecase

import (
	"context"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/utils"
)

// ReviewUseCase maintains the seller rating as a derived aggregate. The
// average is recomputed inside the same repository transaction that writes
// the review, never by a background job.
type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

type SubmitReviewInput struct {
	OrderID string
	Rating  int
	Comment string
}

func (uc *ReviewUseCase) SubmitReview(ctx context.Context, reviewerID string, input SubmitReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.InvalidRating()
	}

	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != reviewerID {
		return nil, errors.Forbidden("Only the buyer can review this order", nil)
	}

	review := &entity.Review{
		OrderID:    input.OrderID,
		ReviewerID: reviewerID,
		TargetID:   order.SellerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	// The buyer-match, completed-status and already-reviewed checks repeat
	// inside the transaction; the read above only resolves the target.
	if err := uc.reviewRepo.CreateWithAggregate(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (uc *ReviewUseCase) ListUserReviews(ctx context.Context, targetID string, page, limit int) ([]*entity.Review, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)

	return uc.reviewRepo.ListByTargetID(ctx, targetID, pagination.PageSize, pagination.Offset)
}
