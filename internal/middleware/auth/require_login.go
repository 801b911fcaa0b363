package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/models"
)

type TokenMiddleware struct {
	JWTSecret []byte
}

// RequireLogin rejects requests without a valid access cookie belonging to a
// registered (non-guest) identity.
func (t *TokenMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := identityFromAccessCookie(c, t.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		if ident.Role == models.RoleGuest {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		SetIdentity(c, ident.ID, ident.Role)
		return next(c)
	}
}
