package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/repo"
	"github.com/packnbake/storefront/internal/transport"
)

// CartService keeps one line per product id per owner. Lines carry a value
// snapshot of the product taken at add time.
type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, ownerID string) (*transport.CartResponse, error) {
	items, err := s.Repo.GetCartItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := &transport.CartResponse{Items: items}
	for _, it := range items {
		resp.Subtotal += it.Product.Price * float64(it.Quantity)
		resp.TotalItems += it.Quantity
	}
	return resp, nil
}

func (s *CartService) AddToCart(ctx context.Context, ownerID, productID string) (*models.CartItem, error) {
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}
		return nil, err
	}
	return s.Repo.AddCartItem(ctx, ownerID, product.Snapshot(), 1)
}

// UpdateQuantity sets the line quantity verbatim; zero or negative removes
// the line.
func (s *CartService) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Repo.RemoveCartItem(ctx, ownerID, productID)
	}
	return s.Repo.SetCartItemQuantity(ctx, ownerID, productID, quantity)
}

func (s *CartService) RemoveFromCart(ctx context.Context, ownerID, productID string) error {
	return s.Repo.RemoveCartItem(ctx, ownerID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, ownerID string) error {
	return s.Repo.ClearCart(ctx, ownerID)
}
