package models

import (
	"time"
)

const (
	CategoryTool  = "tool"
	CategorySnack = "snack"

	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"

	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"

	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
)

const SnacksAvailableKey = "snacks_available"

type Product struct {
	ID          string  `gorm:"primaryKey"          json:"id"`
	Name        string  `gorm:"not null"            json:"name"`
	Price       float64 `gorm:"not null"            json:"price"`
	Description string  `gorm:"not null"            json:"description"`
	Image       string  `json:"image"`
	Category    string  `gorm:"not null;index"      json:"category"`
	Position    int64   `gorm:"not null;index"      json:"-"`
}

// ProductSnapshot is the product as it was when it entered a cart. Cart and
// order lines embed it by value so catalog edits never reach past sales.
type ProductSnapshot struct {
	ID          string  `gorm:"column:id"    json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
	}
}

type CartItem struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"          json:"-"`
	OwnerID  string          `gorm:"index;not null"                    json:"-"`
	Product  ProductSnapshot `gorm:"embedded;embeddedPrefix:product_"  json:"product"`
	Quantity int             `gorm:"not null"                          json:"quantity"`
}

type OrderItem struct {
	ID       uint            `gorm:"primaryKey;autoIncrement"          json:"-"`
	OrderID  string          `gorm:"index;not null"                    json:"-"`
	Product  ProductSnapshot `gorm:"embedded;embeddedPrefix:product_"  json:"product"`
	Quantity int             `gorm:"not null"                          json:"quantity"`
}

type Order struct {
	ID             string      `gorm:"primaryKey"                        json:"id"`
	OwnerID        string      `gorm:"index;not null"                    json:"-"`
	Seq            int64       `gorm:"not null;index"                    json:"-"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;references:ID"  json:"items"`
	CustomerName   string      `gorm:"not null"                          json:"customer_name"`
	PhoneNumber    string      `gorm:"not null"                          json:"phone_number"`
	DeliveryOption string      `gorm:"not null"                          json:"delivery_option"`
	Address        string      `json:"address,omitempty"`
	Status         string      `gorm:"not null"                          json:"status"`
	Total          float64     `gorm:"not null"                          json:"total"`
	CreatedAt      time.Time   `gorm:"not null"                          json:"created_at"`
}

type User struct {
	ID           string `gorm:"primaryKey"       json:"id"`
	Email        string `gorm:"unique;not null"  json:"email"`
	Name         string `gorm:"not null"         json:"name"`
	PasswordHash string `gorm:"not null"         json:"-"`
	Role         string `gorm:"not null"         json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"       json:"id"`
	Token     string `gorm:"unique;not null"  json:"token"`
	UserID    string `gorm:"index;not null"   json:"user_id"`
	ExpiresAt int64  `gorm:"not null"         json:"expires_at"`
	Revoked   bool   `gorm:"default:false"    json:"revoked"`
}

type Setting struct {
	Key   string `gorm:"primaryKey"  json:"key"`
	Value string `gorm:"not null"    json:"value"`
}

func ValidCategory(c string) bool {
	return c == CategoryTool || c == CategorySnack
}

func ValidDeliveryOption(d string) bool {
	return d == DeliveryPickup || d == DeliveryDelivery
}

func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed || s == OrderStatusCompleted
}
