package transport

import "github.com/packnbake/storefront/internal/models"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User models.User `json:"user"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse carries the derived totals next to the lines; neither total
// is stored anywhere.
type CartResponse struct {
	Items      []models.CartItem `json:"items"`
	Subtotal   float64           `json:"subtotal"`
	TotalItems int               `json:"total_items"`
}

type CheckoutRequest struct {
	CustomerName   string `json:"customer_name"`
	PhoneNumber    string `json:"phone_number"`
	DeliveryOption string `json:"delivery_option"`
	Address        string `json:"address"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type SnacksAvailabilityResponse struct {
	SnacksAvailable bool `json:"snacks_available"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type ProductPage struct {
	Data []models.Product `json:"data"`
	Meta PageMeta         `json:"meta"`
}
