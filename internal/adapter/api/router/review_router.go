package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
)

func SetupReviewRouter(e *echo.Echo) {
	reviewHandler := handler.GetReviewHandler()

	// Reviews are readable by anyone browsing a seller profile
	e.GET("/v1/users/:id/reviews", reviewHandler.ListUserReviews)
}
