package handler

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/errors"
	"vendora/pkg/response"
	"vendora/pkg/utils"
)

type DisputeHandler struct {
	disputeUseCase *usecase.DisputeUseCase
}

func NewDisputeHandler(disputeUseCase *usecase.DisputeUseCase) *DisputeHandler {
	return &DisputeHandler{
		disputeUseCase: disputeUseCase,
	}
}

// OpenDispute accepts a multipart form: reason and description fields plus
// zero or more evidence image files.
func (h *DisputeHandler) OpenDispute(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return response.Error(c, errors.BadRequest("Order ID is required", nil))
	}

	reason := c.FormValue("reason")
	description := c.FormValue("description")
	if reason == "" {
		return response.Error(c, errors.BadRequest("Dispute reason is required", nil))
	}

	var evidence []usecase.EvidenceFile

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fileHeader := range form.File["evidence"] {
			file, err := fileHeader.Open()
			if err != nil {
				return response.Error(c, errors.BadRequest("Failed to read evidence file", err))
			}
			defer file.Close()

			evidence = append(evidence, usecase.EvidenceFile{
				Reader:      file,
				ContentType: fileHeader.Header.Get("Content-Type"),
			})
		}
	}

	buyerID := c.Get("uid").(string)

	dispute, err := h.disputeUseCase.OpenDispute(c.Request().Context(), buyerID, usecase.OpenDisputeInput{
		OrderID:     orderID,
		Reason:      reason,
		Description: description,
		Evidence:    evidence,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, dispute)
}

func (h *DisputeHandler) GetDispute(c echo.Context) error {
	disputeID := c.Param("id")
	if disputeID == "" {
		return response.Error(c, errors.BadRequest("Dispute ID is required", nil))
	}

	userID := c.Get("uid").(string)

	dispute, err := h.disputeUseCase.GetDisputeByID(c.Request().Context(), userID, disputeID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dispute)
}

func (h *DisputeHandler) ListDisputes(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	userID := c.Get("uid").(string)

	disputes, total, err := h.disputeUseCase.ListDisputes(
		c.Request().Context(),
		userID,
		pagination.Page,
		pagination.PageSize,
	)

	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, disputes, total, pagination.Page, pagination.PageSize)
}

func (h *DisputeHandler) Escalate(c echo.Context) error {
	disputeID := c.Param("id")
	if disputeID == "" {
		return response.Error(c, errors.BadRequest("Dispute ID is required", nil))
	}

	userID := c.Get("uid").(string)

	dispute, err := h.disputeUseCase.Escalate(c.Request().Context(), userID, disputeID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dispute)
}

type proposeSolutionRequest struct {
	Solution string `json:"solution" validate:"required"`
}

func (h *DisputeHandler) ProposeSolution(c echo.Context) error {
	disputeID := c.Param("id")
	if disputeID == "" {
		return response.Error(c, errors.BadRequest("Dispute ID is required", nil))
	}

	var req proposeSolutionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	dispute, err := h.disputeUseCase.ProposeSolution(c.Request().Context(), sellerID, disputeID, req.Solution)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dispute)
}

type resolveDisputeRequest struct {
	Refund bool `json:"refund"`
}

// ResolveDispute is admin-only, enforced by the router middleware.
func (h *DisputeHandler) ResolveDispute(c echo.Context) error {
	disputeID := c.Param("id")
	if disputeID == "" {
		return response.Error(c, errors.BadRequest("Dispute ID is required", nil))
	}

	var req resolveDisputeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	dispute, err := h.disputeUseCase.Resolve(c.Request().Context(), disputeID, req.Refund)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, dispute)
}
