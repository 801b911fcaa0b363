package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/packnbake/storefront/internal/models"
)

func (r *GormRepo) GetCartItems(ctx context.Context, ownerID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem keeps the one-line-per-product invariant: an existing line for
// the product gains quantity, otherwise a fresh snapshot line is appended.
func (r *GormRepo) AddCartItem(ctx context.Context, ownerID string, snap models.ProductSnapshot, qty int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", ownerID, snap.ID).
		First(&item).Error
	if err == nil {
		item.Quantity += qty
		if err := r.DB.WithContext(ctx).Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item = models.CartItem{
		OwnerID:  ownerID,
		Product:  snap,
		Quantity: qty,
	}
	if err := r.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SetCartItemQuantity(ctx context.Context, ownerID, productID string, qty int) error {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	item.Quantity = qty
	return r.DB.WithContext(ctx).Save(&item).Error
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, ownerID, productID string) error {
	return r.DB.WithContext(ctx).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) ClearCart(ctx context.Context, ownerID string) error {
	return r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&models.CartItem{}).Error
}
