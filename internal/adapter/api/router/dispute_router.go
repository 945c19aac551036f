package router

import (
	"github.com/labstack/echo/v4"

	"vendora/internal/adapter/api/handler"
	"vendora/internal/adapter/api/middleware"
)

func SetupDisputeRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	disputeHandler := handler.GetDisputeHandler()

	disputes := e.Group("/v1/disputes")
	disputes.Use(authMiddleware.Authenticate)

	disputes.GET("", disputeHandler.ListDisputes)
	disputes.GET("/:id", disputeHandler.GetDispute)
	disputes.POST("/:id/escalate", disputeHandler.Escalate)
	disputes.POST("/:id/solution", disputeHandler.ProposeSolution)

	admin := e.Group("/v1/admin/disputes")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("/:id/resolve", disputeHandler.ResolveDispute)
}
