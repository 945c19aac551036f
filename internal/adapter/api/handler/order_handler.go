package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/errors"
	"vendora/pkg/response"
	"vendora/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	userID := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrderByID(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	role := c.QueryParam("role")
	status := c.QueryParam("status")

	pagination := utils.GetPaginationParams(c)

	userID := c.Get("uid").(string)

	orders, total, err := h.orderUseCase.ListOrders(
		c.Request().Context(),
		userID,
		role,
		status,
		pagination.Page,
		pagination.PageSize,
	)

	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

type shipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

func (h *OrderHandler) ShipOrder(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	var req shipOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	order, err := h.orderUseCase.Ship(c.Request().Context(), sellerID, orderID, req.TrackingNumber)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ConfirmDelivery(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	buyerID := c.Get("uid").(string)

	order, err := h.orderUseCase.ConfirmDelivery(c.Request().Context(), buyerID, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	buyerID := c.Get("uid").(string)

	order, err := h.orderUseCase.Complete(c.Request().Context(), buyerID, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}
