package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	// Browsing is public
	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)

	// Publishing and editing require authentication
	authenticated := e.Group("/v1/listings")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("", listingHandler.CreateListing)
	authenticated.PATCH("/:id", listingHandler.UpdateListing)
	authenticated.POST("/:id/boost", listingHandler.BoostListing)
	authenticated.POST("/images", listingHandler.UploadImage)
}
