package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/transport"
)

// ProductQuery narrows a catalog listing. The zero value returns the whole
// catalog in insertion order.
type ProductQuery struct {
	Category      string
	ExcludeSnacks bool
	Offset        int
	Limit         int
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, q ProductQuery) (int64, []models.Product, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Product{})
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.ExcludeSnacks {
		tx = tx.Where("category <> ?", models.CategorySnack)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	tx = tx.Order("position ASC")
	if q.Limit > 0 {
		tx = tx.Offset(q.Offset).Limit(q.Limit)
	}

	var items []models.Product
	if err := tx.Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int64
		if err := tx.Model(&models.Product{}).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error; err != nil {
			return err
		}
		prod.ID = r.IDs.NewID()
		prod.Position = maxPos + 1
		return tx.Create(prod).Error
	})
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id string) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetSetting(ctx context.Context, key string, def string) (string, error) {
	var s models.Setting
	if err := r.DB.WithContext(ctx).Where("key = ?", key).First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return def, nil
		}
		return def, err
	}
	return s.Value, nil
}

func (r *GormRepo) SetSetting(ctx context.Context, key, value string) error {
	s := models.Setting{Key: key, Value: value}
	res := r.DB.WithContext(ctx).Model(&models.Setting{}).Where("key = ?", key).Update("value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.DB.WithContext(ctx).Create(&s).Error
	}
	return nil
}
