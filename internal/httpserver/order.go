package httpserver

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/events"
	"github.com/packnbake/storefront/internal/logging"
	authmw "github.com/packnbake/storefront/internal/middleware/auth"
	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/service"
	"github.com/packnbake/storefront/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer events.Producer
}

var nonDigits = regexp.MustCompile(`\D`)

// validateCheckout runs at the handler boundary; the order store never
// sees a request that fails here.
func validateCheckout(req *transport.CheckoutRequest) map[string]string {
	errs := map[string]string{}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		errs["customer_name"] = "name is required"
	}

	digits := nonDigits.ReplaceAllString(req.PhoneNumber, "")
	if len(digits) < 10 || len(digits) > 15 {
		errs["phone_number"] = "enter a valid phone number"
	}

	if !models.ValidDeliveryOption(req.DeliveryOption) {
		errs["delivery_option"] = "choose pickup or delivery"
	}
	if req.DeliveryOption == models.DeliveryDelivery && strings.TrimSpace(req.Address) == "" {
		errs["address"] = "address is required for delivery"
	}

	return errs
}

func (h *OrderHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "error", err)
	}
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	ident, ok := authmw.GetIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if errs := validateCheckout(&req); len(errs) > 0 {
		l.Warn("place_order_error", "status", 400, "reason", "validation", "fields", errs)
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
	}

	order, err := h.Svc.PlaceOrder(ctx, ident.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("place_order_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("place_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot place order")
	}

	h.publish(c, order.ID, map[string]any{
		"type":     "order_placed",
		"order_id": order.ID,
		"total":    order.Total,
	})

	l.Info("place_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

// ListOrders returns the caller's own orders, newest first.
func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	ident, ok := authmw.GetIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	orders, err := h.Svc.ListOrders(ctx, ident.ID)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}
	return c.JSON(http.StatusOK, newestFirst(orders))
}

// AdminListOrders returns every order, newest first.
func (h *OrderHTTP) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.admin_list")

	orders, err := h.Svc.ListOrders(ctx, "")
	if err != nil {
		l.Error("admin_list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}
	return c.JSON(http.StatusOK, newestFirst(orders))
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")
	id := c.Param("id")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	affected, err := h.Svc.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_status_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("update_status_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update status")
	}

	// An absent id changed nothing, so there is nothing to announce.
	if affected > 0 {
		h.publish(c, id, map[string]any{
			"type":     "order_status_changed",
			"order_id": id,
			"status":   req.Status,
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// The store hands out insertion order; display wants createdAt descending.
func newestFirst(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[len(orders)-1-i] = o
	}
	return out
}
