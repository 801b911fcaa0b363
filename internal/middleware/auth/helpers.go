package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/tokens"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
	GuestCookie   = "guestToken"
)

// Identity is what the route handlers read back out of the echo context.
type Identity struct {
	ID   string
	Role string
}

const identityKey = "identity"

func SetIdentity(c echo.Context, id, role string) {
	c.Set(identityKey, Identity{ID: id, Role: role})
}

func GetIdentity(c echo.Context) (Identity, bool) {
	v, ok := c.Get(identityKey).(Identity)
	return v, ok && v.ID != ""
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func ExpireCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func identityFromAccessCookie(c echo.Context, secret []byte) (Identity, error) {
	cookie, err := c.Cookie(AccessCookie)
	if err != nil {
		return Identity{}, err
	}
	claims, err := tokens.Parse(cookie.Value, secret)
	if err != nil {
		return Identity{}, err
	}
	id, role, err := tokens.Subject(claims)
	if err != nil {
		return Identity{}, err
	}
	return Identity{ID: id, Role: role}, nil
}
