package service

import (
	"context"
	"fmt"
	"time"

	"github.com/packnbake/storefront/internal/idgen"
	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/repo"
	"github.com/packnbake/storefront/internal/transport"
)

// OrderService creates orders from cart snapshots and walks their status
// through pending, confirmed and completed. The data layer does not police
// transition order; the admin surface chooses which moves to offer.
type OrderService struct {
	Repo *repo.GormRepo
	IDs  idgen.Generator
}

// PlaceOrder assumes the delivery details were validated at the HTTP
// boundary; it still refuses an empty cart.
func (s *OrderService) PlaceOrder(ctx context.Context, ownerID string, req transport.CheckoutRequest) (*models.Order, error) {
	cartItems, err := s.Repo.GetCartItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, it := range cartItems {
		orderItems = append(orderItems, models.OrderItem{
			Product:  it.Product,
			Quantity: it.Quantity,
		})
		total += it.Product.Price * float64(it.Quantity)
	}

	order := &models.Order{
		ID:             s.IDs.NewID(),
		OwnerID:        ownerID,
		Items:          orderItems,
		CustomerName:   req.CustomerName,
		PhoneNumber:    req.PhoneNumber,
		DeliveryOption: req.DeliveryOption,
		Address:        req.Address,
		Status:         models.OrderStatusPending,
		Total:          total,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.PlaceOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, ownerID string) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, ownerID)
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, id)
}

// UpdateOrderStatus overwrites the status unconditionally; an absent id is a
// silent no-op and repeating a status changes nothing. The returned count is
// the number of rows touched, so callers can tell a write from a no-op.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (int64, error) {
	if !models.ValidOrderStatus(status) {
		return 0, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.UpdateOrderStatus(ctx, id, status)
}
