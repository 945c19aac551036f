package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"vendora/internal/usecase"
	"vendora/pkg/errors"
	"vendora/pkg/response"
	"vendora/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Condition   string   `json:"condition" validate:"required,oneof=new like_new good fair worn"`
	Category    string   `json:"category" validate:"required"`
	PostalCode  string   `json:"postal_code" validate:"required"`
	Images      []string `json:"images"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), sellerID, usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		Category:    req.Category,
		PostalCode:  req.PostalCode,
		Images:      req.Images,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), listingID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	category := c.QueryParam("category")
	sellerID := c.QueryParam("seller_id")

	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(
		c.Request().Context(),
		category,
		sellerID,
		pagination.Page,
		pagination.PageSize,
	)

	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

type updateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), sellerID, listingID, usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

type boostListingRequest struct {
	BoostType string `json:"boost_type" validate:"required,oneof=daily weekly featured"`
	Days      int    `json:"days" validate:"required,min=1,max=30"`
}

func (h *ListingHandler) BoostListing(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	var req boostListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.BoostListing(
		c.Request().Context(),
		sellerID,
		listingID,
		req.BoostType,
		time.Duration(req.Days)*24*time.Hour,
	)

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image file is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read image file", err))
	}
	defer file.Close()

	url, err := h.listingUseCase.UploadListingImage(
		c.Request().Context(),
		file,
		fileHeader.Header.Get("Content-Type"),
	)

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{"url": url})
}
