package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()
	disputeHandler := handler.GetDisputeHandler()
	reviewHandler := handler.GetReviewHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.POST("/:id/ship", orderHandler.ShipOrder)
	orders.POST("/:id/delivered", orderHandler.ConfirmDelivery)
	orders.POST("/:id/complete", orderHandler.CompleteOrder)
	orders.POST("/:id/dispute", disputeHandler.OpenDispute)
	orders.POST("/:id/review", reviewHandler.SubmitReview)
}
