package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/events"
	"github.com/packnbake/storefront/internal/logging"
	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/search"
	"github.com/packnbake/storefront/internal/service"
	"github.com/packnbake/storefront/internal/transport"
	"github.com/packnbake/storefront/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer events.Producer
	Search   *search.Client // nil when ES is not configured
}

func (h *ProductHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "error", err)
	}
}

func (h *ProductHTTP) reindex(c echo.Context, p *models.Product) {
	if h.Search == nil {
		return
	}
	if err := h.Search.IndexProduct(c.Request().Context(), p); err != nil {
		logging.FromContext(c.Request().Context()).Error("search index failed", "product_id", p.ID, "error", err)
	}
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	product, err := h.Svc.GetProduct(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", c.Param("id"))
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}
	return c.JSON(http.StatusOK, product)
}

// GetProducts is the storefront listing: category filter plus the snack
// availability gate.
func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	category := c.QueryParam("category")
	if category != "" && !models.ValidCategory(category) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListStorefront(ctx, category, offset, limit)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, transport.ProductPage{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	})
}

// AdminListProducts always returns the whole catalog, snack flag or not.
func (h *ProductHTTP) AdminListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.admin_list")

	items, err := h.Svc.ListAll(ctx)
	if err != nil {
		l.Error("admin_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	h.publish(c, prod.ID, map[string]any{
		"type":       "product_created",
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	h.reindex(c, prod)

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")
	id := c.Param("id")

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("product_patch_error", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_patch_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_patch_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	h.publish(c, prod.ID, map[string]any{
		"type":       "product_updated",
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	h.reindex(c, prod)

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")
	id := c.Param("id")

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Error("product_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	h.publish(c, id, map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	if h.Search != nil {
		if err := h.Search.DeleteProduct(ctx, id); err != nil {
			l.Error("search deindex failed", "product_id", id, "error", err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) SnacksAvailability(c echo.Context) error {
	available, err := h.Svc.SnacksAvailable(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read availability")
	}
	return c.JSON(http.StatusOK, transport.SnacksAvailabilityResponse{SnacksAvailable: available})
}

func (h *ProductHTTP) ToggleSnacks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.toggle_snacks")

	next, err := h.Svc.ToggleSnackAvailability(ctx)
	if err != nil {
		l.Error("toggle_snacks_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot toggle availability")
	}

	l.Info("toggle_snacks_success", "snacks_available", next)
	return c.JSON(http.StatusOK, transport.SnacksAvailabilityResponse{SnacksAvailable: next})
}
