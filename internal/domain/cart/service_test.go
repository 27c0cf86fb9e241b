// internal/domain/cart/service_test.go
package cart

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/catalog"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Pitstop Performance API", Environment: "test"},
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &Cart{}, &CartItem{}))
	return db
}

type CartServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *Service
}

func (s *CartServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewService(s.db, testConfig())
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (s *CartServiceTestSuite) createProduct(name string, price int64) *catalog.Product {
	product := catalog.Product{Name: name, Price: price, IsActive: true}
	s.Require().NoError(s.db.Create(&product).Error)
	return &product
}

func (s *CartServiceTestSuite) TestGetCartCreatesEmptyCart() {
	view, err := s.service.GetCart(1)
	s.NoError(err)
	s.Equal(uint(1), view.UserID)
	s.Empty(view.Items)
	s.Zero(view.ItemCount)
	s.Zero(view.TotalPrice)

	// Same cart on the second call
	again, err := s.service.GetCart(1)
	s.NoError(err)
	s.Equal(view.ID, again.ID)
}

func (s *CartServiceTestSuite) TestAddItem() {
	product := s.createProduct("Brake Pads", 8900)

	view, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.NoError(err)
	s.Require().Len(view.Items, 1)
	s.Equal(2, view.Items[0].Quantity)
	s.Equal(int64(8900), view.Items[0].Price)
	s.Equal(int64(17800), view.Items[0].LineTotal)
	s.Equal(int64(17800), view.TotalPrice)
	s.Equal(2, view.ItemCount)
}

func (s *CartServiceTestSuite) TestAddItemMergesQuantity() {
	product := s.createProduct("Brake Pads", 8900)

	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.NoError(err)
	view, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	s.NoError(err)

	// One line, merged quantity
	s.Require().Len(view.Items, 1)
	s.Equal(5, view.Items[0].Quantity)
	s.Equal(int64(44500), view.TotalPrice)
}

func (s *CartServiceTestSuite) TestAddItemUnknownProduct() {
	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: 999, Quantity: 1})
	s.ErrorIs(err, apperr.ErrNotFound)
	s.Equal("Product not found", apperr.Message(err))
}

func (s *CartServiceTestSuite) TestAddItemInactiveProduct() {
	product := s.createProduct("Discontinued Part", 100)
	s.NoError(s.db.Model(&catalog.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error)

	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *CartServiceTestSuite) TestTotalAcrossProducts() {
	pads := s.createProduct("Brake Pads", 8900)
	rotors := s.createProduct("Rotors", 19900)

	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: pads.ID, Quantity: 2})
	s.NoError(err)
	view, err := s.service.AddItem(1, &AddToCartRequest{ProductID: rotors.ID, Quantity: 1})
	s.NoError(err)

	s.Len(view.Items, 2)
	s.Equal(3, view.ItemCount)
	s.Equal(int64(2*8900+19900), view.TotalPrice)
}

func (s *CartServiceTestSuite) TestUpdateItemQuantity() {
	product := s.createProduct("Brake Pads", 8900)
	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.NoError(err)

	// Lines are addressed by product, not by row id
	updated, err := s.service.UpdateItemQuantity(1, product.ID, &UpdateCartItemRequest{Quantity: 7})
	s.NoError(err)
	s.Equal(7, updated.Items[0].Quantity)
	s.Equal(int64(7*8900), updated.TotalPrice)

	_, err = s.service.UpdateItemQuantity(1, product.ID, &UpdateCartItemRequest{Quantity: 0})
	s.ErrorIs(err, apperr.ErrInvalidArgument)

	_, err = s.service.UpdateItemQuantity(1, 999, &UpdateCartItemRequest{Quantity: 1})
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *CartServiceTestSuite) TestUpdateItemOtherUsersCart() {
	product := s.createProduct("Brake Pads", 8900)
	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.NoError(err)

	_, err = s.service.UpdateItemQuantity(2, product.ID, &UpdateCartItemRequest{Quantity: 1})
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *CartServiceTestSuite) TestRemoveItem() {
	product := s.createProduct("Brake Pads", 8900)
	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.NoError(err)

	after, err := s.service.RemoveItem(1, product.ID)
	s.NoError(err)
	s.Empty(after.Items)
	s.Zero(after.TotalPrice)

	_, err = s.service.RemoveItem(1, product.ID)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *CartServiceTestSuite) TestRemoveItemKeepsOtherLines() {
	pads := s.createProduct("Brake Pads", 8900)
	rotors := s.createProduct("Rotors", 19900)

	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: pads.ID, Quantity: 2})
	s.NoError(err)
	_, err = s.service.AddItem(1, &AddToCartRequest{ProductID: rotors.ID, Quantity: 1})
	s.NoError(err)

	after, err := s.service.RemoveItem(1, pads.ID)
	s.NoError(err)
	s.Require().Len(after.Items, 1)
	s.Equal(rotors.ID, after.Items[0].ProductID)
	s.Equal(int64(19900), after.TotalPrice)
}

func (s *CartServiceTestSuite) TestClearCartIdempotent() {
	product := s.createProduct("Brake Pads", 8900)
	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.NoError(err)

	s.NoError(s.service.ClearCart(1))

	view, err := s.service.GetCart(1)
	s.NoError(err)
	s.Empty(view.Items)

	// Clearing an already empty cart succeeds
	s.NoError(s.service.ClearCart(1))
}

func (s *CartServiceTestSuite) TestCartsAreIsolatedPerUser() {
	product := s.createProduct("Brake Pads", 8900)

	_, err := s.service.AddItem(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.NoError(err)

	other, err := s.service.GetCart(2)
	s.NoError(err)
	s.Empty(other.Items)
}
