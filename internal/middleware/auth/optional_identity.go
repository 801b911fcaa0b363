package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/idgen"
	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/tokens"
)

// OptionalIdentity resolves a cart owner for routes that work logged out:
// the logged-in user id when the access cookie is valid, otherwise a guest
// id minted into its own signed cookie so the cart survives reloads.
func (t *TokenMiddleware) OptionalIdentity(ids idgen.Generator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ident, err := identityFromAccessCookie(c, t.JWTSecret); err == nil {
				SetIdentity(c, ident.ID, ident.Role)
				return next(c)
			}

			if cookie, err := c.Cookie(GuestCookie); err == nil {
				if claims, err := tokens.Parse(cookie.Value, t.JWTSecret); err == nil {
					if id, role, err := tokens.Subject(claims); err == nil && role == models.RoleGuest {
						SetIdentity(c, id, role)
						return next(c)
					}
				}
			}

			guestID := "guest_" + ids.NewID()
			token, err := tokens.SignGuestToken(guestID, t.JWTSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue guest identity")
			}
			c.SetCookie(CreateCookie(GuestCookie, token, "/", time.Now().Add(tokens.GuestTTL)))
			SetIdentity(c, guestID, models.RoleGuest)
			return next(c)
		}
	}
}
