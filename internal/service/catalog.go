package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/repo"
	"github.com/packnbake/storefront/internal/transport"
)

// CatalogService owns the product list and the storefront-wide snack
// availability flag. The admin view always bypasses the flag.
type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListStorefront is the customer-facing view: snack products disappear while
// the availability flag is off.
func (s *CatalogService) ListStorefront(ctx context.Context, category string, offset, limit int) (int64, []models.Product, error) {
	available, err := s.SnacksAvailable(ctx)
	if err != nil {
		return 0, nil, err
	}
	q := repo.ProductQuery{Category: category, Offset: offset, Limit: limit}
	if !available {
		if category == models.CategorySnack {
			return 0, []models.Product{}, nil
		}
		q.ExcludeSnacks = true
	}
	return s.Repo.GetProducts(ctx, q)
}

// ListAll is the admin view, unaffected by snack availability.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	_, items, err := s.Repo.GetProducts(ctx, repo.ProductQuery{})
	return items, err
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if !models.ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, req.Category)
	}

	prod := models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id string) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Category != nil && !models.ValidCategory(*req.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, *req.Category)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return prod, err
}

// DeleteProduct is a no-op for ids that are already gone.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *CatalogService) SnacksAvailable(ctx context.Context) (bool, error) {
	v, err := s.Repo.GetSetting(ctx, models.SnacksAvailableKey, "true")
	if err != nil {
		return true, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true, nil
	}
	return b, nil
}

func (s *CatalogService) ToggleSnackAvailability(ctx context.Context) (bool, error) {
	current, err := s.SnacksAvailable(ctx)
	if err != nil {
		return current, err
	}
	next := !current
	if err := s.Repo.SetSetting(ctx, models.SnacksAvailableKey, strconv.FormatBool(next)); err != nil {
		return current, err
	}
	return next, nil
}
