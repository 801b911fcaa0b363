package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/logging"
	authmw "github.com/packnbake/storefront/internal/middleware/auth"
	"github.com/packnbake/storefront/internal/service"
	"github.com/packnbake/storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func cartOwner(c echo.Context) (string, error) {
	ident, ok := authmw.GetIdentity(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "no cart identity")
	}
	return ident.ID, nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	ownerID, err := cartOwner(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(ctx, ownerID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read cart")
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	ownerID, err := cartOwner(c)
	if err != nil {
		return err
	}

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	item, err := h.Svc.AddToCart(ctx, ownerID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_error", "status", 404, "product_id", req.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to cart")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	ownerID, err := cartOwner(c)
	if err != nil {
		return err
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateQuantity(ctx, ownerID, c.Param("productID"), req.Quantity); err != nil {
		l.Error("update_quantity_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update quantity")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	ownerID, err := cartOwner(c)
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveFromCart(ctx, ownerID, c.Param("productID")); err != nil {
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove from cart")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	ownerID, err := cartOwner(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, ownerID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear cart")
	}
	return c.NoContent(http.StatusNoContent)
}
