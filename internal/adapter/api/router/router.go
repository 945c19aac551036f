package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, paymentHandler *handler.PaymentHandler) {
	SetupHealthRouter(e)
	SetupListingRouter(e, authMiddleware)
	SetupCheckoutRouter(e, authMiddleware)
	SetupOrderRouter(e, authMiddleware)
	SetupDisputeRouter(e, authMiddleware, adminMiddleware)
	SetupReviewRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupPaymentRouter(e, paymentHandler)
}
