package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/transport"
)

func TestCatalogInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	names := []string{"Bowl", "Spatula", "Scale"}
	for _, n := range names {
		env.mustCreateProduct(t, n, 10, models.CategoryTool)
	}

	items, err := env.Catalog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, n := range names {
		require.Equal(t, n, items[i].Name)
	}
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []transport.CreateProductRequest{
		{Name: "", Price: 10, Category: models.CategoryTool},
		{Name: "Bowl", Price: -1, Category: models.CategoryTool},
		{Name: "Bowl", Price: 10, Category: "beverage"},
	}
	for _, req := range cases {
		_, err := env.Catalog.CreateProduct(ctx, req)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestPatchProductPartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)

	newPrice := 44.99
	patched, err := env.Catalog.PatchProduct(ctx, transport.PatchProductRequest{Price: &newPrice}, bowl.ID)
	require.NoError(t, err)

	// Only the provided field changed, the id never does.
	require.Equal(t, bowl.ID, patched.ID)
	require.Equal(t, 44.99, patched.Price)
	require.Equal(t, "Mixing Bowl", patched.Name)
	require.Equal(t, bowl.Description, patched.Description)
	require.Equal(t, bowl.Category, patched.Category)
}

func TestPatchProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	name := "Ghost"
	_, err := env.Catalog.PatchProduct(context.Background(), transport.PatchProductRequest{Name: &name}, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductMissingIsNoop(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.Catalog.DeleteProduct(context.Background(), "missing"))
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)
	require.NoError(t, env.Catalog.DeleteProduct(ctx, bowl.ID))

	_, err := env.Catalog.GetProduct(ctx, bowl.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestToggleSnackAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateProduct(t, "Bowl", 10, models.CategoryTool)
	env.mustCreateProduct(t, "Cookies", 5, models.CategorySnack)

	available, err := env.Catalog.SnacksAvailable(ctx)
	require.NoError(t, err)
	require.True(t, available)

	next, err := env.Catalog.ToggleSnackAvailability(ctx)
	require.NoError(t, err)
	require.False(t, next)

	// Storefront hides snacks while the flag is off.
	total, storefront, err := env.Catalog.ListStorefront(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, storefront, 1)
	require.Equal(t, models.CategoryTool, storefront[0].Category)

	// A direct snack listing comes back empty rather than leaking items.
	_, snacks, err := env.Catalog.ListStorefront(ctx, models.CategorySnack, 0, 0)
	require.NoError(t, err)
	require.Empty(t, snacks)

	// The admin view ignores the flag.
	adminItems, err := env.Catalog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, adminItems, 2)

	next, err = env.Catalog.ToggleSnackAvailability(ctx)
	require.NoError(t, err)
	require.True(t, next)

	total, _, err = env.Catalog.ListStorefront(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestStorefrontCategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateProduct(t, "Bowl", 10, models.CategoryTool)
	env.mustCreateProduct(t, "Cookies", 5, models.CategorySnack)

	_, tools, err := env.Catalog.ListStorefront(ctx, models.CategoryTool, 0, 0)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "Bowl", tools[0].Name)

	_, snacks, err := env.Catalog.ListStorefront(ctx, models.CategorySnack, 0, 0)
	require.NoError(t, err)
	require.Len(t, snacks, 1)
	require.Equal(t, "Cookies", snacks[0].Name)
}
