package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/transport"
)

const owner = "user-1"

func TestAddToCartAggregatesByProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)
	cookies := env.mustCreateProduct(t, "Cookies", 8.99, models.CategorySnack)

	for i := 0; i < 3; i++ {
		_, err := env.Cart.AddToCart(ctx, owner, bowl.ID)
		require.NoError(t, err)
	}
	_, err := env.Cart.AddToCart(ctx, owner, cookies.ID)
	require.NoError(t, err)

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	require.Equal(t, bowl.ID, cart.Items[0].Product.ID)
	require.Equal(t, 3, cart.Items[0].Quantity)
	require.Equal(t, cookies.ID, cart.Items[1].Product.ID)
	require.Equal(t, 1, cart.Items[1].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Cart.AddToCart(context.Background(), owner, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)

	for i := 0; i < 5; i++ {
		_, err := env.Cart.AddToCart(ctx, owner, bowl.ID)
		require.NoError(t, err)
	}
	require.NoError(t, env.Cart.RemoveFromCart(ctx, owner, bowl.ID))

	_, err := env.Cart.AddToCart(ctx, owner, bowl.ID)
	require.NoError(t, err)

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartDerivedTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tool := env.mustCreateProduct(t, "Oven", 48500, models.CategoryTool)
	snack := env.mustCreateProduct(t, "Brownie", 2500, models.CategorySnack)

	_, err := env.Cart.AddToCart(ctx, owner, tool.ID)
	require.NoError(t, err)
	_, err = env.Cart.AddToCart(ctx, owner, snack.ID)
	require.NoError(t, err)

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, float64(51000), cart.Subtotal)
	require.Equal(t, 2, cart.TotalItems)

	// Recompute independently from the lines themselves.
	var expected float64
	for _, it := range cart.Items {
		expected += it.Product.Price * float64(it.Quantity)
	}
	require.Equal(t, expected, cart.Subtotal)
}

func TestUpdateQuantityVerbatim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)
	_, err := env.Cart.AddToCart(ctx, owner, bowl.ID)
	require.NoError(t, err)

	require.NoError(t, env.Cart.UpdateQuantity(ctx, owner, bowl.ID, 7))

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 7, cart.Items[0].Quantity)
}

// Quantities at or below zero remove the line instead of storing a
// nonsensical count.
func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)
	_, err := env.Cart.AddToCart(ctx, owner, bowl.ID)
	require.NoError(t, err)

	require.NoError(t, env.Cart.UpdateQuantity(ctx, owner, bowl.ID, 0))

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, float64(0), cart.Subtotal)

	_, err = env.Cart.AddToCart(ctx, owner, bowl.ID)
	require.NoError(t, err)
	require.NoError(t, env.Cart.UpdateQuantity(ctx, owner, bowl.ID, -3))

	cart, err = env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)
	snack := env.mustCreateProduct(t, "Cookies", 8.99, models.CategorySnack)
	_, err := env.Cart.AddToCart(ctx, owner, bowl.ID)
	require.NoError(t, err)
	_, err = env.Cart.AddToCart(ctx, owner, snack.ID)
	require.NoError(t, err)

	require.NoError(t, env.Cart.ClearCart(ctx, owner))

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCartLineIsSnapshotOfProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)
	_, err := env.Cart.AddToCart(ctx, owner, bowl.ID)
	require.NoError(t, err)

	newPrice := 99.99
	newName := "Renamed Bowl"
	_, err = env.Catalog.PatchProduct(ctx, transport.PatchProductRequest{
		Price: &newPrice,
		Name:  &newName,
	}, bowl.ID)
	require.NoError(t, err)

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 39.99, cart.Items[0].Product.Price)
	require.Equal(t, "Mixing Bowl", cart.Items[0].Product.Name)
}

func TestCartsAreSeparatedByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bowl := env.mustCreateProduct(t, "Mixing Bowl", 39.99, models.CategoryTool)
	_, err := env.Cart.AddToCart(ctx, "guest_abc", bowl.ID)
	require.NoError(t, err)

	cart, err := env.Cart.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
