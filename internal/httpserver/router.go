package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/packnbake/storefront/internal/idgen"
	authmw "github.com/packnbake/storefront/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	SearchHandler  *SearchHTTP // nil when ES is not configured
	Tokens         *authmw.TokenMiddleware
	IDs            idgen.Generator
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.GET("/me", d.AuthHandler.Me, d.Tokens.RequireLogin)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	v1.GET("/snacks/availability", d.ProductHandler.SnacksAvailability)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	// Carting works logged out; guests get their own signed identity.
	cart := v1.Group("/cart", d.Tokens.OptionalIdentity(d.IDs))
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddToCart)
	cart.PATCH("/items/:productID", d.CartHandler.UpdateQuantity)
	cart.DELETE("/items/:productID", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	// Checkout is session-gated.
	orders := v1.Group("/orders", d.Tokens.RequireLogin)
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("", d.OrderHandler.ListOrders)

	admin := v1.Group("/admin", d.Tokens.AdminOnly)
	admin.GET("/products", d.ProductHandler.AdminListProducts)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/snacks/toggle", d.ProductHandler.ToggleSnacks)
	admin.GET("/orders", d.OrderHandler.AdminListOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
}
