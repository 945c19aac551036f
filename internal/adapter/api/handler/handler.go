package handler

import (
	"vendora/internal/usecase"
)

var (
	listingHandler  *ListingHandler
	checkoutHandler *CheckoutHandler
	orderHandler    *OrderHandler
	disputeHandler  *DisputeHandler
	reviewHandler   *ReviewHandler
	userHandler     *UserHandler
)

func Setup(
	listingUseCase *usecase.ListingUseCase,
	checkoutUseCase *usecase.CheckoutUseCase,
	orderUseCase *usecase.OrderUseCase,
	disputeUseCase *usecase.DisputeUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	userUseCase *usecase.UserUseCase,
) {
	listingHandler = NewListingHandler(listingUseCase)
	checkoutHandler = NewCheckoutHandler(checkoutUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	disputeHandler = NewDisputeHandler(disputeUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	userHandler = NewUserHandler(userUseCase)
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetCheckoutHandler() *CheckoutHandler {
	return checkoutHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetDisputeHandler() *DisputeHandler {
	return disputeHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}
