// internal/domain/cart/service.go
package cart

import (
	"errors"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/catalog"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemView represents a cart line with product details
type CartItemView struct {
	ID        uint             `json:"id"`
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     int64            `json:"price"`
	LineTotal int64            `json:"line_total"`
	Product   *catalog.Product `json:"product,omitempty"`
}

// CartView represents the cart with recomputed totals
type CartView struct {
	ID         uint           `json:"id"`
	UserID     uint           `json:"user_id"`
	Items      []CartItemView `json:"items"`
	ItemCount  int            `json:"item_count"`
	TotalPrice int64          `json:"total_price"`
}

// GetOrCreateCart returns the user's cart, creating it on first use
func (s *Service) GetOrCreateCart(userID uint) (*Cart, error) {
	var c Cart
	err := s.db.Where("user_id = ?", userID).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to retrieve cart", err)
	}

	c = Cart{UserID: userID}
	// Two requests can race to create the same cart, the unique index
	// on user_id makes one of them lose. Re-read on conflict.
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&c).Error; err != nil {
		return nil, apperr.Internal("failed to create cart", err)
	}
	if c.ID == 0 {
		if err := s.db.Where("user_id = ?", userID).First(&c).Error; err != nil {
			return nil, apperr.Internal("failed to retrieve cart", err)
		}
	}
	return &c, nil
}

// GetCart returns the user's cart with items and totals
func (s *Service) GetCart(userID uint) (*CartView, error) {
	c, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	return s.buildCartView(c)
}

// AddItem adds a product to the cart, merging quantity if the product
// is already present
func (s *Service) AddItem(userID uint, req *AddToCartRequest) (*CartView, error) {
	if req.Quantity < 1 {
		return nil, apperr.InvalidArgument("Quantity must be at least 1", nil)
	}

	var prod catalog.Product
	result := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod)
	if result.Error != nil {
		return nil, apperr.NotFound("Product not found", result.Error)
	}

	c, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	item := CartItem{
		CartID:    c.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     prod.Price,
	}

	// Concurrent adds for the same product land on the unique
	// (cart_id, product_id) index and merge quantities atomically.
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", req.Quantity),
			"price":    prod.Price,
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, apperr.Internal("failed to add item to cart", err)
	}

	return s.buildCartView(c)
}

// UpdateItemQuantity replaces the quantity of the cart line holding
// the given product
func (s *Service) UpdateItemQuantity(userID, productID uint, req *UpdateCartItemRequest) (*CartView, error) {
	if req.Quantity < 1 {
		return nil, apperr.InvalidArgument("Quantity must be at least 1", nil)
	}

	c, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	result := s.db.Model(&CartItem{}).
		Where("product_id = ? AND cart_id = ?", productID, c.ID).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		return nil, apperr.Internal("failed to update cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("Cart item not found", nil)
	}

	return s.buildCartView(c)
}

// RemoveItem removes the cart line holding the given product
func (s *Service) RemoveItem(userID, productID uint) (*CartView, error) {
	c, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	result := s.db.Where("product_id = ? AND cart_id = ?", productID, c.ID).Delete(&CartItem{})
	if result.Error != nil {
		return nil, apperr.Internal("failed to remove cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("Cart item not found", nil)
	}

	return s.buildCartView(c)
}

// ClearCart removes all items from the user's cart. Clearing an
// already empty cart succeeds.
func (s *Service) ClearCart(userID uint) error {
	c, err := s.GetOrCreateCart(userID)
	if err != nil {
		return err
	}

	if err := s.db.Where("cart_id = ?", c.ID).Delete(&CartItem{}).Error; err != nil {
		return apperr.Internal("failed to clear cart", err)
	}
	return nil
}

// buildCartView loads cart items and recomputes totals from stored
// line prices
func (s *Service) buildCartView(c *Cart) (*CartView, error) {
	var items []CartItem
	if err := s.db.Where("cart_id = ?", c.ID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, apperr.Internal("failed to retrieve cart items", err)
	}

	view := &CartView{
		ID:     c.ID,
		UserID: c.UserID,
		Items:  make([]CartItemView, 0, len(items)),
	}

	for _, item := range items {
		var prod catalog.Product
		var prodPtr *catalog.Product
		if err := s.db.First(&prod, item.ProductID).Error; err == nil {
			prodPtr = &prod
		}

		lineTotal := item.Price * int64(item.Quantity)
		view.Items = append(view.Items, CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: lineTotal,
			Product:   prodPtr,
		})
		view.ItemCount += item.Quantity
		view.TotalPrice += lineTotal
	}

	return view, nil
}
