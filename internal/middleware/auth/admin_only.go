package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/models"
)

// AdminOnly gates the back-office routes on role admin.
func (t *TokenMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := identityFromAccessCookie(c, t.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		if ident.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
		SetIdentity(c, ident.ID, ident.Role)
		return next(c)
	}
}
