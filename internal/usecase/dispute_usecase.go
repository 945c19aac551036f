package usecase

import (
	"context"
	"io"
	"time"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
	"vendora/pkg/utils"
)

type DisputeUseCase struct {
	disputeRepo repository.DisputeRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	uploader    Uploader
	notifier    Notifier
}

func NewDisputeUseCase(
	disputeRepo repository.DisputeRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	uploader Uploader,
	notifier Notifier,
) *DisputeUseCase {
	return &DisputeUseCase{
		disputeRepo: disputeRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		uploader:    uploader,
		notifier:    notifier,
	}
}

type EvidenceFile struct {
	Reader      io.Reader
	ContentType string
}

type OpenDisputeInput struct {
	OrderID     string
	Reason      string
	Description string
	Evidence    []EvidenceFile
}

// OpenDispute uploads all evidence first, then creates the dispute, then
// freezes the order. A failed upload aborts the whole operation before any
// document is written, so no dispute ever exists with partial evidence.
func (uc *DisputeUseCase) OpenDispute(ctx context.Context, buyerID string, input OpenDisputeInput) (*entity.Dispute, error) {
	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can open a dispute on this order", nil)
	}

	// A disputed order is not disputable again, and terminal orders are
	// out of reach entirely.
	if !entity.CanTransition(order.Status, entity.OrderDisputed) {
		return nil, errors.Conflict("Order cannot be disputed in its current status")
	}

	evidenceURLs := make([]string, 0, len(input.Evidence))
	for _, file := range input.Evidence {
		url, err := uc.uploader.UploadFile(ctx, file.Reader, file.ContentType, "disputes", false)
		if err != nil {
			return nil, errors.UploadFailed(err)
		}
		evidenceURLs = append(evidenceURLs, url)
	}

	dispute := &entity.Dispute{
		OrderID:     order.ID,
		ListingID:   order.ListingID,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		Reason:      input.Reason,
		Description: input.Description,
		Evidence:    evidenceURLs,
		Status:      entity.DisputeOpen,
	}

	if err := uc.disputeRepo.Create(ctx, dispute); err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = entity.OrderDisputed
	order.DisputedAt = &now

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.notify(ctx, order.SellerID, "Dispute opened", "The buyer opened a dispute on \""+order.ListingTitle+"\".", dispute.ID)

	return dispute, nil
}

// Escalate hands the dispute to human support. Escalating an already
// escalated dispute is a no-op.
func (uc *DisputeUseCase) Escalate(ctx context.Context, callerID, disputeID string) (*entity.Dispute, error) {
	dispute, err := uc.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if dispute.BuyerID != callerID && dispute.SellerID != callerID {
		return nil, errors.Forbidden("Only a dispute party can escalate it", nil)
	}

	if dispute.Status == entity.DisputeEscalated {
		return dispute, nil
	}

	now := time.Now()
	dispute.Status = entity.DisputeEscalated
	dispute.EscalatedAt = &now

	if err := uc.disputeRepo.Update(ctx, dispute); err != nil {
		return nil, err
	}

	return dispute, nil
}

func (uc *DisputeUseCase) ProposeSolution(ctx context.Context, sellerID, disputeID, solution string) (*entity.Dispute, error) {
	dispute, err := uc.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if dispute.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can propose a solution", nil)
	}

	if solution == "" {
		return nil, errors.BadRequest("Solution text is required", nil)
	}

	dispute.ProposedSolution = solution

	if err := uc.disputeRepo.Update(ctx, dispute); err != nil {
		return nil, err
	}

	uc.notify(ctx, dispute.BuyerID, "Solution proposed", "The seller proposed a solution for your dispute.", dispute.ID)

	return dispute, nil
}

// Resolve closes an escalated dispute. Refund cancels the order and flags
// the payment refunded; otherwise the order completes in the seller's favor.
func (uc *DisputeUseCase) Resolve(ctx context.Context, disputeID string, refund bool) (*entity.Dispute, error) {
	dispute, err := uc.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if dispute.ResolvedAt != nil {
		return nil, errors.Conflict("Dispute is already resolved")
	}

	order, err := uc.orderRepo.GetByID(ctx, dispute.OrderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if refund {
		if !entity.CanTransition(order.Status, entity.OrderCancelled) {
			return nil, errors.InvalidStateTransition(string(order.Status), string(entity.OrderCancelled))
		}
		order.Status = entity.OrderCancelled
		order.PaymentStatus = entity.PaymentRefunded
		order.CancellationReason = "dispute resolved with refund"
		order.CancelledAt = &now
		dispute.Resolution = "refund"
	} else {
		if !entity.CanTransition(order.Status, entity.OrderCompleted) {
			return nil, errors.InvalidStateTransition(string(order.Status), string(entity.OrderCompleted))
		}
		order.Status = entity.OrderCompleted
		order.BuyerConfirmedAt = &now
		dispute.Resolution = "dismissed"
	}

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	dispute.ResolvedAt = &now

	if err := uc.disputeRepo.Update(ctx, dispute); err != nil {
		return nil, err
	}

	uc.notify(ctx, dispute.BuyerID, "Dispute resolved", "Support resolved your dispute.", dispute.ID)
	uc.notify(ctx, dispute.SellerID, "Dispute resolved", "Support resolved the dispute on your order.", dispute.ID)

	return dispute, nil
}

func (uc *DisputeUseCase) GetDisputeByID(ctx context.Context, userID, disputeID string) (*entity.Dispute, error) {
	dispute, err := uc.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if dispute.BuyerID != userID && dispute.SellerID != userID {
		return nil, errors.Forbidden("You don't have permission to view this dispute", nil)
	}

	return dispute, nil
}

func (uc *DisputeUseCase) ListDisputes(ctx context.Context, userID string, page, limit int) ([]*entity.Dispute, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)

	return uc.disputeRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (uc *DisputeUseCase) notify(ctx context.Context, userID, title, body, disputeID string) {
	if uc.notifier == nil {
		return
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil || user.FCMToken == "" {
		return
	}

	if err := uc.notifier.Send(ctx, user.FCMToken, title, body, map[string]string{"dispute_id": disputeID}); err != nil {
		logger.Warn("Failed to notify user %s for dispute %s: %v", userID, disputeID, err)
	}
}
