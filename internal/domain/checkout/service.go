// internal/domain/checkout/service.go
package checkout

import (
	"errors"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/cart"
	"github.com/pitstop-performance/backend/internal/domain/order"
	"github.com/pitstop-performance/backend/internal/domain/user"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service drives the checkout flow. A checkout is a pending order
// built from the user's cart, filled in step by step and finalized
// once shipping and payment details are set.
type Service struct {
	db             *gorm.DB
	config         *config.Config
	cartService    *cart.Service
	addressService *user.AddressService
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:             db,
		config:         cfg,
		cartService:    cart.NewService(db, cfg),
		addressService: user.NewAddressService(db, cfg),
	}
}

// StartCheckout creates a pending order from the user's cart. The
// cart lines are frozen into order items and the cart is emptied in
// the same transaction, so later price changes do not affect the
// order.
func (s *Service) StartCheckout(userID uint) (*order.Order, error) {
	// Only one checkout at a time per user
	var existing order.Order
	err := s.db.Where("user_id = ? AND status = ?", userID, order.OrderStatusPending).First(&existing).Error
	if err == nil {
		return nil, apperr.InvalidState("Checkout already in progress", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to check pending orders", err)
	}

	cartView, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(cartView.Items) == 0 {
		return nil, apperr.InvalidState("Cart is empty or does not exist", nil)
	}

	o := order.Order{
		UserID:         userID,
		CartID:         cartView.ID,
		Status:         order.OrderStatusPending,
		TotalPrice:     cartView.TotalPrice,
		ShippingMethod: order.ShippingRegular,
		PaymentMethod:  order.PaymentCard,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&o).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Internal("failed to create order", err)
	}

	for _, item := range cartView.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		orderItem := order.OrderItem{
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			TotalPrice:  item.LineTotal,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Internal("failed to create order item", err)
		}
	}

	if err := tx.Where("cart_id = ?", cartView.ID).Delete(&cart.CartItem{}).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Internal("failed to clear cart", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Internal("failed to commit checkout", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"order_id": o.ID,
		"total":    o.TotalPrice,
	}).Info("Checkout started")

	return s.loadOrder(o.ID)
}

// AddAddress creates an address during checkout and binds it onto the
// pending order according to its shipping/billing flags
func (s *Service) AddAddress(userID uint, req *user.CreateAddressRequest) (*order.Order, error) {
	o, err := s.pendingOrder(userID)
	if err != nil {
		return nil, err
	}

	address, err := s.addressService.CreateAddress(userID, req)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if address.IsShipping {
		updates["shipping_address_id"] = address.ID
	}
	if address.IsBilling {
		updates["billing_address_id"] = address.ID
	}
	if len(updates) > 0 {
		if err := s.db.Model(o).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to bind address to order", err)
		}
	}

	return s.loadOrder(o.ID)
}

// SetShippingAddress attaches one of the user's addresses to the
// pending order as the shipping address
func (s *Service) SetShippingAddress(userID, addressID uint) (*order.Order, error) {
	o, err := s.pendingOrder(userID)
	if err != nil {
		return nil, err
	}

	// Address must belong to the user
	address, err := s.addressService.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(o).Update("shipping_address_id", address.ID).Error; err != nil {
		return nil, apperr.Internal("failed to set shipping address", err)
	}
	return s.loadOrder(o.ID)
}

// SetBillingAddress attaches one of the user's addresses to the
// pending order as the billing address
func (s *Service) SetBillingAddress(userID, addressID uint) (*order.Order, error) {
	o, err := s.pendingOrder(userID)
	if err != nil {
		return nil, err
	}

	address, err := s.addressService.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(o).Update("billing_address_id", address.ID).Error; err != nil {
		return nil, apperr.Internal("failed to set billing address", err)
	}
	return s.loadOrder(o.ID)
}

// SetShippingMethod sets the shipping method on the pending order
func (s *Service) SetShippingMethod(userID uint, method string) (*order.Order, error) {
	if !order.ValidShippingMethods[method] {
		return nil, apperr.InvalidArgument("Invalid shipping method", nil)
	}

	o, err := s.pendingOrder(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(o).Update("shipping_method", method).Error; err != nil {
		return nil, apperr.Internal("failed to set shipping method", err)
	}
	return s.loadOrder(o.ID)
}

// SetPaymentMethod sets the payment method on the pending order
func (s *Service) SetPaymentMethod(userID uint, method string) (*order.Order, error) {
	if !order.ValidPaymentMethods[method] {
		return nil, apperr.InvalidArgument("Invalid payment method", nil)
	}

	o, err := s.pendingOrder(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(o).Update("payment_method", method).Error; err != nil {
		return nil, apperr.Internal("failed to set payment method", err)
	}
	return s.loadOrder(o.ID)
}

// Complete finalizes the pending order. The order must have both
// addresses, a shipping method and a payment method before it can be
// completed. Addresses may be set in either order.
func (s *Service) Complete(userID uint) (*order.Order, error) {
	o, err := s.pendingOrder(userID)
	if err != nil {
		return nil, err
	}

	if o.ShippingAddressID == nil || o.BillingAddressID == nil || o.ShippingMethod == "" || o.PaymentMethod == "" {
		return nil, apperr.InvalidState("Order not ready for completion", nil)
	}

	if err := s.db.Model(o).Update("status", order.OrderStatusComplete).Error; err != nil {
		return nil, apperr.Internal("failed to complete order", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"order_id": o.ID,
	}).Info("Order completed")

	return s.loadOrder(o.ID)
}

// pendingOrder returns the user's pending order or an invalid state
// error if there is none
func (s *Service) pendingOrder(userID uint) (*order.Order, error) {
	var o order.Order
	err := s.db.Where("user_id = ? AND status = ?", userID, order.OrderStatusPending).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidState("No pending order found", err)
		}
		return nil, apperr.Internal("failed to retrieve pending order", err)
	}
	return &o, nil
}

// loadOrder reloads an order with its items
func (s *Service) loadOrder(orderID uint) (*order.Order, error) {
	var o order.Order
	if err := s.db.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, apperr.Internal("failed to load order", err)
	}
	return &o, nil
}
