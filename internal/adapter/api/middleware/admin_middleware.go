package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
)

// AdminMiddleware gates support operations such as dispute resolution on
// the caller's stored role.
type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			// A verified token without a profile is still not support staff.
			if errors.Is(err, "NOT_FOUND") {
				return echo.NewHTTPError(http.StatusForbidden, "Support staff access required")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check support staff access")
		}

		if user.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Support staff access required")
		}

		return next(c)
	}
}
