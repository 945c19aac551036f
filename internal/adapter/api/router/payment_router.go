package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
)

// Payment callbacks come from the gateway, not from an authenticated user.
func SetupPaymentRouter(e *echo.Echo, paymentHandler *handler.PaymentHandler) {
	e.POST("/v1/payments/callback", paymentHandler.HandleCallback)
}
