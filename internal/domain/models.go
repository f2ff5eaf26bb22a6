package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	MRP         *float64
	Category    *string
	Description *string
	PhotoURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Customer represents a registered storefront customer
type Customer struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ShippingAddress is the checkout shipping form
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Order represents a placed purchase
type Order struct {
	ID              uuid.UUID
	OrderNumber     *string
	Client          string
	CustomerEmail   string
	Status          OrderStatus
	Total           float64
	Discount        float64
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentID       *string
	GatewayOrderID  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem represents one line of a placed order. The shape is a
// snapshot of the cart line at checkout time; prices are never
// re-validated against the catalog afterwards.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Name      string
	PhotoRef  *string
	Quantity  int
	UnitPrice float64
	CreatedAt time.Time
}

// FormattedAddress renders the shipping address as a single line the
// way the store prints it on order messages.
func (a ShippingAddress) FormattedAddress() string {
	return a.Address + ", " + a.City + ", " + a.State + ", " + a.Country + " - " + a.Pincode
}
