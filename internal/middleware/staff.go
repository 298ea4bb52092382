package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mini-instagram/backend/internal/models"
	"github.com/mini-instagram/backend/internal/repositories"
)

// StaffOnly restricts a route group to staff accounts. It runs after
// JWTAuthMiddleware and resolves the caller against the user store so a
// revoked staff bit takes effect immediately.
func StaffOnly(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok || claims.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !user.IsStaff {
				return echo.NewHTTPError(http.StatusForbidden, "Staff access required")
			}
			return next(c)
		}
	}
}
