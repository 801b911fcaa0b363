package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/packnbake/storefront/internal/hash"
	"github.com/packnbake/storefront/internal/idgen"
	"github.com/packnbake/storefront/internal/models"
)

type seedProduct struct {
	Name        string
	Price       float64
	Description string
	Image       string
	Category    string
}

var initialProducts = []seedProduct{
	{
		Name:        "Professional Mixing Bowl Set",
		Price:       39.99,
		Description: "Set of 3 stainless steel mixing bowls in different sizes",
		Image:       "https://images.unsplash.com/photo-1584269360102-641c2ec5d442?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
		Category:    models.CategoryTool,
	},
	{
		Name:        "Silicone Spatula Set",
		Price:       12.99,
		Description: "Heat-resistant silicone spatulas for baking and cooking",
		Image:       "https://images.unsplash.com/photo-1610701066741-5991888a72ea?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
		Category:    models.CategoryTool,
	},
	{
		Name:        "Digital Kitchen Scale",
		Price:       24.99,
		Description: "Precise digital scale for measuring ingredients",
		Image:       "https://images.unsplash.com/photo-1591985666643-1ecc67616216?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
		Category:    models.CategoryTool,
	},
	{
		Name:        "Chocolate Chip Cookies",
		Price:       8.99,
		Description: "A dozen freshly baked chocolate chip cookies",
		Image:       "https://images.unsplash.com/photo-1499636136210-6f4ee915583e?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
		Category:    models.CategorySnack,
	},
	{
		Name:        "Cinnamon Rolls",
		Price:       14.99,
		Description: "Pack of 6 homemade cinnamon rolls with cream cheese frosting",
		Image:       "https://images.unsplash.com/photo-1583491470871-3bc299407461?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80",
		Category:    models.CategorySnack,
	},
}

type seedUser struct {
	Email    string
	Password string
	Name     string
	Role     string
}

var initialUsers = []seedUser{
	{Email: "admin@packnbake.com", Password: "admin123", Name: "Admin User", Role: models.RoleAdmin},
	{Email: "user@example.com", Password: "user123", Name: "Regular User", Role: models.RoleUser},
}

// Seed populates the starter catalog, the identity directory and the
// snacks-availability flag. Safe to run on every start.
func Seed(db *gorm.DB, gen idgen.Generator) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count == 0 {
		for i, sp := range initialProducts {
			p := models.Product{
				ID:          gen.NewID(),
				Name:        sp.Name,
				Price:       sp.Price,
				Description: sp.Description,
				Image:       sp.Image,
				Category:    sp.Category,
				Position:    int64(i + 1),
			}
			if err := db.Create(&p).Error; err != nil {
				return fmt.Errorf("seeding product %q: %w", sp.Name, err)
			}
		}
	}

	for _, su := range initialUsers {
		var existing models.User
		err := db.Where("email = ?", su.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("looking up seed user %q: %w", su.Email, err)
		}
		pwHash, err := hash.HashPassword(su.Password)
		if err != nil {
			return fmt.Errorf("hashing seed password: %w", err)
		}
		u := models.User{
			ID:           gen.NewID(),
			Email:        su.Email,
			Name:         su.Name,
			PasswordHash: pwHash,
			Role:         su.Role,
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("seeding user %q: %w", su.Email, err)
		}
	}

	setting := models.Setting{Key: models.SnacksAvailableKey, Value: "true"}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}

	return nil
}
