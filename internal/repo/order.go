package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/packnbake/storefront/internal/models"
)

// PlaceOrder persists the order and empties the owner's cart in one
// transaction. The order's item lines are already value snapshots, so the
// cart rows can go.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&models.Order{}).
			Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return err
		}
		order.Seq = maxSeq + 1

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("owner_id = ?", order.OwnerID).Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order when ownerID is empty, in insertion order.
// Display surfaces re-sort newest first themselves.
func (r *GormRepo) ListOrders(ctx context.Context, ownerID string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") })
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}

	var orders []models.Order
	if err := q.Order("seq ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id, status string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}
