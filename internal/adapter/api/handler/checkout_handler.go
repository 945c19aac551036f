package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/domain/entity"
	"vendora/internal/usecase"
	"vendora/pkg/response"
)

type CheckoutHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

type shippingAddressRequest struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type reserveRequest struct {
	ListingID       string                  `json:"listing_id" validate:"required"`
	DeliveryMethod  string                  `json:"delivery_method" validate:"required,oneof=domicile pickup"`
	ShippingAddress *shippingAddressRequest `json:"shipping_address"`
}

func (h *CheckoutHandler) Reserve(c echo.Context) error {
	var req reserveRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(string)

	input := usecase.ReserveInput{
		ListingID:      req.ListingID,
		DeliveryMethod: req.DeliveryMethod,
	}
	if req.ShippingAddress != nil {
		input.ShippingAddress = &entity.ShippingAddress{
			Line1:      req.ShippingAddress.Line1,
			Line2:      req.ShippingAddress.Line2,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		}
	}

	result, err := h.checkoutUseCase.Reserve(c.Request().Context(), buyerID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
