package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/events"
	"github.com/packnbake/storefront/internal/logging"
	authmw "github.com/packnbake/storefront/internal/middleware/auth"
	"github.com/packnbake/storefront/internal/service"
	"github.com/packnbake/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer events.Producer
}

func (h *AuthHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "error", err)
	}
}

func (h *AuthHTTP) setSessionCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(authmw.CreateCookie(authmw.AccessCookie, res.AccessToken, "/", res.AccessExp))
	c.SetCookie(authmw.CreateCookie(authmw.RefreshCookie, res.RefreshToken, "/", res.RefreshExp))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		l.Warn("login_error", "status", 400, "reason", "missing credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.setSessionCookies(c, res)
	h.publish(c, res.User.ID, map[string]any{
		"type":    "user_logged_in",
		"user_id": res.User.ID,
		"email":   res.User.Email,
	})
	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.AuthResponse{User: res.User})
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		l.Warn("register_error", "status", 400, "reason", "missing fields")
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and password required")
	}

	res, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.setSessionCookies(c, res)
	h.publish(c, res.User.ID, map[string]any{
		"type":    "user_registered",
		"user_id": res.User.ID,
		"email":   res.User.Email,
	})
	l.Info("register_success")
	return c.JSON(http.StatusCreated, transport.AuthResponse{User: res.User})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(authmw.RefreshCookie); err == nil {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout_error", "error", err)
		}
	}

	c.SetCookie(authmw.ExpireCookie(authmw.AccessCookie))
	c.SetCookie(authmw.ExpireCookie(authmw.RefreshCookie))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie(authmw.RefreshCookie)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token required")
	}

	res, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		l.Warn("refresh_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	h.setSessionCookies(c, res)
	return c.JSON(http.StatusOK, transport.AuthResponse{User: res.User})
}

// Me reconciles the session after a reload: a valid access cookie maps back
// to the stored identity, anything else reads as logged out.
func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	ident, ok := authmw.GetIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	user, err := h.Svc.Me(ctx, ident.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(http.StatusOK, transport.AuthResponse{User: *user})
}
