package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/domain/service"
	"vendora/internal/usecase"
	"vendora/pkg/errors"
	"vendora/pkg/logger"
	"vendora/pkg/response"
)

// PaymentHandler consumes the payment gateway's confirm/fail callback and
// drives the order state machine with it.
type PaymentHandler struct {
	orderUseCase *usecase.OrderUseCase
	gateway      service.PaymentGateway
}

func NewPaymentHandler(orderUseCase *usecase.OrderUseCase, gateway service.PaymentGateway) *PaymentHandler {
	return &PaymentHandler{
		orderUseCase: orderUseCase,
		gateway:      gateway,
	}
}

func (h *PaymentHandler) HandleCallback(c echo.Context) error {
	var notification map[string]interface{}
	if err := c.Bind(&notification); err != nil {
		return response.Error(c, errors.BadRequest("Invalid callback payload", err))
	}

	parsed, err := h.gateway.ParseCallback(c.Request().Context(), notification)
	if err != nil {
		return response.Error(c, errors.BadRequest("Unrecognized callback payload", err))
	}

	if parsed.Paid {
		order, err := h.orderUseCase.ConfirmPayment(c.Request().Context(), parsed.OrderID)
		if err != nil {
			logger.Error("Payment confirmation failed for order %s: %v", parsed.OrderID, err)
			return response.Error(c, err)
		}
		return response.Success(c, order)
	}

	order, err := h.orderUseCase.FailPayment(c.Request().Context(), parsed.OrderID)
	if err != nil {
		logger.Error("Payment failure handling failed for order %s: %v", parsed.OrderID, err)
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
