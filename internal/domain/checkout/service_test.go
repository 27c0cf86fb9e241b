// internal/domain/checkout/service_test.go
package checkout

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/cart"
	"github.com/pitstop-performance/backend/internal/domain/catalog"
	"github.com/pitstop-performance/backend/internal/domain/order"
	"github.com/pitstop-performance/backend/internal/domain/user"
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
	require.NoError(t, db.AutoMigrate(
		&user.User{}, &user.Address{},
		&catalog.Product{},
		&cart.Cart{}, &cart.CartItem{},
		&order.Order{}, &order.OrderItem{},
	))
	return db
}

type CheckoutServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	service     *Service
	cartService *cart.Service
}

func (s *CheckoutServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	cfg := testConfig()
	s.service = NewService(s.db, cfg)
	s.cartService = cart.NewService(s.db, cfg)
}

func TestCheckoutServiceSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}

func (s *CheckoutServiceTestSuite) createProduct(name string, price int64) *catalog.Product {
	product := catalog.Product{Name: name, Price: price, IsActive: true}
	s.Require().NoError(s.db.Create(&product).Error)
	return &product
}

func (s *CheckoutServiceTestSuite) fillCart(userID uint) *catalog.Product {
	product := s.createProduct(fmt.Sprintf("Part %s", uuid.NewString()), 8900)
	_, err := s.cartService.AddItem(userID, &cart.AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)
	return product
}

func (s *CheckoutServiceTestSuite) addAddress(userID uint) *user.Address {
	addressService := user.NewAddressService(s.db, testConfig())
	address, err := addressService.CreateAddress(userID, &user.CreateAddressRequest{
		StreetAddress: "1200 Turbo Lane",
		City:          "Detroit",
		Country:       "USA",
		IsShipping:    true,
	})
	s.Require().NoError(err)
	return address
}

func (s *CheckoutServiceTestSuite) TestStartCheckout() {
	product := s.fillCart(1)

	o, err := s.service.StartCheckout(1)
	s.NoError(err)
	s.Equal(order.OrderStatusPending, o.Status)
	s.Equal(int64(17800), o.TotalPrice)
	s.Equal(order.ShippingRegular, o.ShippingMethod)
	s.Equal(order.PaymentCard, o.PaymentMethod)
	s.Nil(o.ShippingAddressID)

	s.Require().Len(o.Items, 1)
	s.Equal(product.ID, o.Items[0].ProductID)
	s.Equal(product.Name, o.Items[0].ProductName)
	s.Equal(2, o.Items[0].Quantity)
	s.Equal(int64(8900), o.Items[0].Price)
	s.Equal(int64(17800), o.Items[0].TotalPrice)

	// Starting checkout empties the cart
	view, err := s.cartService.GetCart(1)
	s.NoError(err)
	s.Empty(view.Items)
}

func (s *CheckoutServiceTestSuite) TestStartCheckoutEmptyCart() {
	_, err := s.service.StartCheckout(1)
	s.ErrorIs(err, apperr.ErrInvalidState)
	s.Equal("Cart is empty or does not exist", apperr.Message(err))
}

func (s *CheckoutServiceTestSuite) TestStartCheckoutExclusive() {
	s.fillCart(1)

	_, err := s.service.StartCheckout(1)
	s.NoError(err)

	_, err = s.service.StartCheckout(1)
	s.ErrorIs(err, apperr.ErrInvalidState)
	s.Equal("Checkout already in progress", apperr.Message(err))
}

func (s *CheckoutServiceTestSuite) TestOrderPricesFrozen() {
	product := s.fillCart(1)

	o, err := s.service.StartCheckout(1)
	s.NoError(err)

	// Raising the catalog price after checkout leaves the order untouched
	s.NoError(s.db.Model(&catalog.Product{}).Where("id = ?", product.ID).Update("price", 99900).Error)

	var reloaded order.Order
	s.NoError(s.db.Preload("Items").First(&reloaded, o.ID).Error)
	s.Equal(int64(17800), reloaded.TotalPrice)
	s.Equal(int64(8900), reloaded.Items[0].Price)
}

func (s *CheckoutServiceTestSuite) TestSetShippingAddress() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)
	address := s.addAddress(1)

	o, err := s.service.SetShippingAddress(1, address.ID)
	s.NoError(err)
	s.Require().NotNil(o.ShippingAddressID)
	s.Equal(address.ID, *o.ShippingAddressID)
}

func (s *CheckoutServiceTestSuite) TestSetShippingAddressNotOwned() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)
	otherAddress := s.addAddress(2)

	_, err = s.service.SetShippingAddress(1, otherAddress.ID)
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *CheckoutServiceTestSuite) TestSetBillingAddress() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)
	address := s.addAddress(1)

	o, err := s.service.SetBillingAddress(1, address.ID)
	s.NoError(err)
	s.Require().NotNil(o.BillingAddressID)
	s.Equal(address.ID, *o.BillingAddressID)
}

func (s *CheckoutServiceTestSuite) TestSetMethodsValidation() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)

	o, err := s.service.SetShippingMethod(1, order.ShippingNextDay)
	s.NoError(err)
	s.Equal(order.ShippingNextDay, o.ShippingMethod)

	_, err = s.service.SetShippingMethod(1, "Carrier Pigeon")
	s.ErrorIs(err, apperr.ErrInvalidArgument)
	s.Equal("Invalid shipping method", apperr.Message(err))

	o, err = s.service.SetPaymentMethod(1, order.PaymentVenmo)
	s.NoError(err)
	s.Equal(order.PaymentVenmo, o.PaymentMethod)

	_, err = s.service.SetPaymentMethod(1, "IOU")
	s.ErrorIs(err, apperr.ErrInvalidArgument)
	s.Equal("Invalid payment method", apperr.Message(err))
}

func (s *CheckoutServiceTestSuite) TestStepsRequirePendingOrder() {
	address := s.addAddress(1)

	_, err := s.service.SetShippingAddress(1, address.ID)
	s.ErrorIs(err, apperr.ErrInvalidState)
	s.Equal("No pending order found", apperr.Message(err))

	_, err = s.service.SetShippingMethod(1, order.ShippingRegular)
	s.ErrorIs(err, apperr.ErrInvalidState)

	_, err = s.service.Complete(1)
	s.ErrorIs(err, apperr.ErrInvalidState)
}

func (s *CheckoutServiceTestSuite) TestAddAddressRequiresPendingOrder() {
	_, err := s.service.AddAddress(1, &user.CreateAddressRequest{
		StreetAddress: "1200 Turbo Lane",
		City:          "Detroit",
		Country:       "USA",
		IsShipping:    true,
	})
	s.ErrorIs(err, apperr.ErrInvalidState)
	s.Equal("No pending order found", apperr.Message(err))
}

func (s *CheckoutServiceTestSuite) TestAddAddressBindsFlaggedRoles() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)

	// A shipping-only address binds only the shipping side
	o, err := s.service.AddAddress(1, &user.CreateAddressRequest{
		StreetAddress: "1200 Turbo Lane",
		City:          "Detroit",
		Country:       "USA",
		IsShipping:    true,
	})
	s.NoError(err)
	s.Require().NotNil(o.ShippingAddressID)
	s.Nil(o.BillingAddressID)

	// A billing-only address fills in the other side and leaves shipping alone
	shippingID := *o.ShippingAddressID
	o, err = s.service.AddAddress(1, &user.CreateAddressRequest{
		StreetAddress: "88 Invoice Street",
		City:          "Detroit",
		Country:       "USA",
		IsBilling:     true,
	})
	s.NoError(err)
	s.Require().NotNil(o.ShippingAddressID)
	s.Equal(shippingID, *o.ShippingAddressID)
	s.Require().NotNil(o.BillingAddressID)
	s.NotEqual(shippingID, *o.BillingAddressID)
}

func (s *CheckoutServiceTestSuite) TestAddAddressWithBothFlagsReadiesOrder() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)

	o, err := s.service.AddAddress(1, &user.CreateAddressRequest{
		StreetAddress: "1200 Turbo Lane",
		City:          "Detroit",
		Country:       "USA",
		IsShipping:    true,
		IsBilling:     true,
	})
	s.NoError(err)
	s.Require().NotNil(o.ShippingAddressID)
	s.Require().NotNil(o.BillingAddressID)
	s.Equal(*o.ShippingAddressID, *o.BillingAddressID)

	done, err := s.service.Complete(1)
	s.NoError(err)
	s.Equal(order.OrderStatusComplete, done.Status)
}

func (s *CheckoutServiceTestSuite) TestCompleteRequiresBothAddresses() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)

	_, err = s.service.Complete(1)
	s.ErrorIs(err, apperr.ErrInvalidState)
	s.Equal("Order not ready for completion", apperr.Message(err))

	// Shipping alone is not enough
	address := s.addAddress(1)
	_, err = s.service.SetShippingAddress(1, address.ID)
	s.NoError(err)
	_, err = s.service.Complete(1)
	s.ErrorIs(err, apperr.ErrInvalidState)
}

func (s *CheckoutServiceTestSuite) TestFullPurchaseScenario() {
	userService := user.NewService(s.db, testConfig())

	registered, err := userService.Register(&user.RegisterRequest{
		Username: "speedracer",
		Email:    "speed@example.com",
		Password: "supersecret1",
	})
	s.Require().NoError(err)

	auth, err := userService.Login(&user.LoginRequest{Username: "speedracer", Password: "supersecret1"})
	s.Require().NoError(err)
	s.NotEmpty(auth.AccessToken)

	product := s.createProduct("Brembo GT Brake Kit", 249900)
	_, err = s.cartService.AddItem(registered.ID, &cart.AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	o, err := s.service.StartCheckout(registered.ID)
	s.Require().NoError(err)
	s.Equal(2*product.Price, o.TotalPrice)

	// One address flagged for both roles is enough to finalize
	o, err = s.service.AddAddress(registered.ID, &user.CreateAddressRequest{
		StreetAddress: "1200 Turbo Lane",
		City:          "Detroit",
		Country:       "USA",
		IsShipping:    true,
		IsBilling:     true,
	})
	s.Require().NoError(err)
	s.Require().NotNil(o.ShippingAddressID)
	s.Require().NotNil(o.BillingAddressID)

	done, err := s.service.Complete(registered.ID)
	s.Require().NoError(err)
	s.Equal(order.OrderStatusComplete, done.Status)
}

func (s *CheckoutServiceTestSuite) TestCompleteFinalizesOrder() {
	s.fillCart(1)
	_, err := s.service.StartCheckout(1)
	s.NoError(err)

	// One address can serve as both shipping and billing
	address := s.addAddress(1)
	_, err = s.service.SetShippingAddress(1, address.ID)
	s.NoError(err)
	_, err = s.service.SetBillingAddress(1, address.ID)
	s.NoError(err)

	o, err := s.service.Complete(1)
	s.NoError(err)
	s.Equal(order.OrderStatusComplete, o.Status)
	s.False(o.IsPending())

	// Completion frees the user to start a new checkout
	s.fillCart(1)
	_, err = s.service.StartCheckout(1)
	s.NoError(err)
}
