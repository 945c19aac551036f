package usecase

import (
	"context"
	"time"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/internal/domain/service"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
)

// CheckoutUseCase converts a buyer's purchase intent into a reserved listing
// plus a pending order. The availability check and both writes happen inside
// one repository transaction, so two buyers can never both reserve the same
// listing.
type CheckoutUseCase struct {
	orderRepo   repository.OrderRepository
	listingRepo repository.ListingRepository
	gateway     service.PaymentGateway
	window      time.Duration
}

func NewCheckoutUseCase(
	orderRepo repository.OrderRepository,
	listingRepo repository.ListingRepository,
	gateway service.PaymentGateway,
	window time.Duration,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		gateway:     gateway,
		window:      window,
	}
}

type ReserveInput struct {
	ListingID       string
	DeliveryMethod  string
	ShippingAddress *entity.ShippingAddress
}

type ReserveResult struct {
	Order      *entity.Order          `json:"order"`
	PaymentURL string                 `json:"payment_url,omitempty"`
	Intent     *service.PaymentIntent `json:"-"`
}

func (uc *CheckoutUseCase) Reserve(ctx context.Context, buyerID string, input ReserveInput) (*ReserveResult, error) {
	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("Cannot buy your own listing", nil)
	}

	if input.DeliveryMethod != entity.DeliveryDomicile && input.DeliveryMethod != entity.DeliveryPickup {
		return nil, errors.BadRequest("Invalid delivery method", nil)
	}

	if input.DeliveryMethod == entity.DeliveryDomicile && input.ShippingAddress == nil {
		return nil, errors.BadRequest("Shipping address is required for home delivery", nil)
	}
	if input.DeliveryMethod == entity.DeliveryPickup && input.ShippingAddress != nil {
		return nil, errors.BadRequest("Shipping address is not used for pickup", nil)
	}

	order := &entity.Order{
		ListingID:       input.ListingID,
		BuyerID:         buyerID,
		DeliveryMethod:  input.DeliveryMethod,
		ShippingAddress: input.ShippingAddress,
	}

	if err := uc.orderRepo.ReserveForOrder(ctx, order, uc.window); err != nil {
		return nil, err
	}

	result := &ReserveResult{Order: order}

	// The charge is the gateway's business; losing it here leaves the buyer
	// with a pending order they can still pay through a retry, so the
	// reservation stands.
	intent, err := uc.gateway.CreatePayment(ctx, order.ID, order.PricePaid)
	if err != nil {
		logger.Warn("Failed to create payment for order %s: %v", order.ID, err)
	} else {
		result.Intent = intent
		result.PaymentURL = intent.RedirectURL
	}

	return result, nil
}
