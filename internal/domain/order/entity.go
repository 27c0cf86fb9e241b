// internal/domain/order/entity.go
package order

import (
	"time"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusComplete OrderStatus = "Complete"
)

// Shipping method options offered at checkout
const (
	ShippingRegular  = "Regular Shipping(3-5 Days)"
	ShippingNextDay  = "Next Day Shipping(1-2 Days)"
	ShippingPriority = "Priority Shipping(1 Day)"
)

// Payment method options offered at checkout
const (
	PaymentCard    = "Card"
	PaymentCashapp = "Cashapp"
	PaymentVenmo   = "Venmo"
)

// ValidShippingMethods lists the accepted shipping method values
var ValidShippingMethods = map[string]bool{
	ShippingRegular:  true,
	ShippingNextDay:  true,
	ShippingPriority: true,
}

// ValidPaymentMethods lists the accepted payment method values
var ValidPaymentMethods = map[string]bool{
	PaymentCard:    true,
	PaymentCashapp: true,
	PaymentVenmo:   true,
}

// Order represents the order entity
type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	UserID            uint        `gorm:"not null;index" json:"user_id"`
	CartID            uint        `gorm:"not null;index" json:"cart_id"`
	Status            OrderStatus `gorm:"not null;default:'Pending';size:20" json:"status"`
	TotalPrice        int64       `gorm:"not null" json:"total_price"` // In cents
	ShippingMethod    string      `gorm:"size:100" json:"shipping_method"`
	PaymentMethod     string      `gorm:"size:50" json:"payment_method"`
	ShippingAddressID *uint       `gorm:"index" json:"shipping_address_id"`
	BillingAddressID  *uint       `gorm:"index" json:"billing_address_id"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents a frozen copy of a cart line at checkout time
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	ProductName string    `gorm:"not null;size:255" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       int64     `gorm:"not null" json:"price"`       // Price per unit in cents
	TotalPrice  int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// IsPending reports whether the order is still in checkout
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}
