package usecase

import (
	"context"
	"time"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
	"vendora/pkg/utils"
)

// OrderUseCase drives the fulfillment state machine. Every transition is
// validated against the entity transition table before any write; an invalid
// transition never mutates the order.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	notifier  Notifier
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// ConfirmPayment is driven by the payment gateway callback. The order and
// listing flip together inside one repository transaction.
func (uc *OrderUseCase) ConfirmPayment(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.ConfirmPayment(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, order.SellerID, "Order paid", "A buyer paid for \""+order.ListingTitle+"\". Time to ship it.", order.ID)

	return order, nil
}

// FailPayment cancels a pending order after the gateway reports a failed
// charge, releasing the listing.
func (uc *OrderUseCase) FailPayment(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.CancelReservation(ctx, orderID, "payment failed")
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, order.BuyerID, "Payment failed", "Your payment for \""+order.ListingTitle+"\" did not go through.", order.ID)

	return order, nil
}

func (uc *OrderUseCase) Ship(ctx context.Context, sellerID, orderID, trackingNumber string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can ship this order", nil)
	}

	if trackingNumber == "" {
		return nil, errors.BadRequest("Tracking number is required", nil)
	}

	if !entity.CanTransition(order.Status, entity.OrderShipped) {
		return nil, errors.InvalidStateTransition(string(order.Status), string(entity.OrderShipped))
	}

	now := time.Now()
	order.Status = entity.OrderShipped
	order.TrackingNumber = trackingNumber
	order.ShippedAt = &now

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.notify(ctx, order.BuyerID, "Order shipped", "\""+order.ListingTitle+"\" is on its way. Tracking: "+trackingNumber, order.ID)

	return order, nil
}

func (uc *OrderUseCase) ConfirmDelivery(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can confirm delivery", nil)
	}

	if !entity.CanTransition(order.Status, entity.OrderDelivered) {
		return nil, errors.InvalidStateTransition(string(order.Status), string(entity.OrderDelivered))
	}

	now := time.Now()
	order.Status = entity.OrderDelivered
	order.DeliveredAt = &now

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.notify(ctx, order.SellerID, "Order delivered", "The buyer received \""+order.ListingTitle+"\".", order.ID)

	return order, nil
}

// Complete is the buyer's explicit confirmation. It releases the seller
// payout, which is the payment collaborator's concern.
func (uc *OrderUseCase) Complete(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != buyerID {
		return nil, errors.Forbidden("Only the buyer can complete this order", nil)
	}

	if !entity.CanTransition(order.Status, entity.OrderCompleted) || order.Status == entity.OrderDisputed {
		return nil, errors.InvalidStateTransition(string(order.Status), string(entity.OrderCompleted))
	}

	now := time.Now()
	order.Status = entity.OrderCompleted
	order.BuyerConfirmedAt = &now
	if order.DeliveredAt == nil {
		order.DeliveredAt = &now
	}

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.notify(ctx, order.SellerID, "Order completed", "\""+order.ListingTitle+"\" is complete. Your payout is on its way.", order.ID)

	return order, nil
}

func (uc *OrderUseCase) GetOrderByID(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != userID && order.SellerID != userID {
		return nil, errors.Forbidden("You don't have permission to view this order", nil)
	}

	return order, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, userID, role, status string, page, limit int) ([]*entity.Order, int64, error) {
	if role != "buyer" && role != "seller" {
		role = "buyer"
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.orderRepo.ListByUserID(ctx, userID, role, status, pagination.PageSize, pagination.Offset)
}

// notify is best-effort, at most once per transition. A notifier failure
// never rolls back the transition that triggered it.
func (uc *OrderUseCase) notify(ctx context.Context, userID, title, body, orderID string) {
	if uc.notifier == nil {
		return
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil || user.FCMToken == "" {
		return
	}

	if err := uc.notifier.Send(ctx, user.FCMToken, title, body, map[string]string{"order_id": orderID}); err != nil {
		logger.Warn("Failed to notify user %s for order %s: %v", userID, orderID, err)
	}
}
