package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appdb "github.com/packnbake/storefront/internal/db"
	"github.com/packnbake/storefront/internal/idgen"
	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/repo"
	"github.com/packnbake/storefront/internal/transport"
)

type testEnv struct {
	DB      *gorm.DB
	Repo    *repo.GormRepo
	IDs     *idgen.Sequential
	Catalog *CatalogService
	Cart    *CartService
	Orders  *OrderService
	Auth    *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(db))

	ids := &idgen.Sequential{Prefix: "id"}
	r := repo.New(db, ids)

	return &testEnv{
		DB:      db,
		Repo:    r,
		IDs:     ids,
		Catalog: &CatalogService{Repo: r},
		Cart:    &CartService{Repo: r},
		Orders:  &OrderService{Repo: r, IDs: ids},
		Auth: &AuthService{
			Repo:          r,
			IDs:           ids,
			JWTSecret:     []byte("test-jwt-secret"),
			RefreshSecret: []byte("test-refresh-secret"),
		},
	}
}

func (env *testEnv) mustCreateProduct(t *testing.T, name string, price float64, category string) *models.Product {
	t.Helper()
	prod, err := env.Catalog.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:        name,
		Price:       price,
		Description: "test description",
		Image:       "https://example.com/p.jpg",
		Category:    category,
	})
	require.NoError(t, err)
	return prod
}
