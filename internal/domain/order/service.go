// internal/domain/order/service.go
package order

import (
	"errors"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles order queries
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// OrderSummary represents the checkout summary of an order
type OrderSummary struct {
	OrderID        uint        `json:"order_id"`
	Status         OrderStatus `json:"status"`
	TotalPrice     int64       `json:"total_price"`
	ShippingMethod string      `json:"shipping_method"`
	PaymentMethod  string      `json:"payment_method"`
	Items          []OrderItem `json:"items"`
}

// GetUserOrders retrieves all orders for a user, newest first
func (s *Service) GetUserOrders(userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal("failed to retrieve orders", err)
	}
	return orders, nil
}

// GetOrder retrieves a single order owned by the user
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found", result.Error)
		}
		return nil, apperr.Internal("failed to retrieve order", result.Error)
	}
	return &o, nil
}

// GetOrderSummary returns the checkout summary for an order owned by
// the user
func (s *Service) GetOrderSummary(userID, orderID uint) (*OrderSummary, error) {
	o, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	return &OrderSummary{
		OrderID:        o.ID,
		Status:         o.Status,
		TotalPrice:     o.TotalPrice,
		ShippingMethod: o.ShippingMethod,
		PaymentMethod:  o.PaymentMethod,
		Items:          o.Items,
	}, nil
}

// GetPendingOrder returns the user's pending order if one exists
func (s *Service) GetPendingOrder(userID uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").
		Where("user_id = ? AND status = ?", userID, OrderStatusPending).
		First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("No pending order found", result.Error)
		}
		return nil, apperr.Internal("failed to retrieve pending order", result.Error)
	}
	return &o, nil
}
