// internal/domain/catalog/service_test.go
package catalog

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pitstop-performance/backend/internal/config"
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
	require.NoError(t, db.AutoMigrate(&PartCategory{}, &BrandCategory{}, &ModelCategory{}, &Product{}))
	return db
}

type CatalogServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *Service
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewService(s.db, testConfig())
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) createProduct(name string, price int64) *Product {
	product, err := s.service.CreateProduct(&ProductCreateRequest{
		Name:  name,
		Price: price,
		Tags:  []string{"performance"},
	})
	s.Require().NoError(err)
	return product
}

func (s *CatalogServiceTestSuite) TestCreateProduct() {
	product := s.createProduct("Brembo GT Brake Kit", 249900)

	s.Equal("Brembo GT Brake Kit", product.Name)
	s.Equal(int64(249900), product.Price)
	s.True(product.IsActive)
	s.Equal(StringList{"performance"}, product.Tags)
}

func (s *CatalogServiceTestSuite) TestCreateProductDuplicateName() {
	s.createProduct("Brembo GT Brake Kit", 249900)

	_, err := s.service.CreateProduct(&ProductCreateRequest{
		Name:  "Brembo GT Brake Kit",
		Price: 100,
	})
	s.ErrorIs(err, apperr.ErrConflict)
	s.Equal("Product with this name already exists", apperr.Message(err))
}

func (s *CatalogServiceTestSuite) TestCreateProductInvalidPrice() {
	_, err := s.service.CreateProduct(&ProductCreateRequest{
		Name:  "Free Spoiler",
		Price: -5,
	})
	s.ErrorIs(err, apperr.ErrInvalidArgument)
}

func (s *CatalogServiceTestSuite) TestCreateProductUnknownCategory() {
	missing := uint(999)
	_, err := s.service.CreateProduct(&ProductCreateRequest{
		Name:           "K&N Air Filter",
		Price:          5999,
		PartCategoryID: &missing,
	})
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *CatalogServiceTestSuite) TestCreateProductWithCategories() {
	part := PartCategory{Name: "Brakes"}
	s.NoError(s.db.Create(&part).Error)
	brand := BrandCategory{Name: "Subaru"}
	s.NoError(s.db.Create(&brand).Error)
	model := ModelCategory{Name: "WRX", BrandCategoryID: brand.ID}
	s.NoError(s.db.Create(&model).Error)

	product, err := s.service.CreateProduct(&ProductCreateRequest{
		Name:            "StopTech Rotors",
		Price:           39900,
		PartCategoryID:  &part.ID,
		BrandCategoryID: &brand.ID,
		ModelCategoryID: &model.ID,
	})
	s.NoError(err)
	s.Require().NotNil(product.PartCategory)
	s.Equal("Brakes", product.PartCategory.Name)
	s.Require().NotNil(product.BrandCategory)
	s.Equal("Subaru", product.BrandCategory.Name)
}

func (s *CatalogServiceTestSuite) TestGetProducts() {
	for i := 1; i <= 5; i++ {
		s.createProduct(fmt.Sprintf("Part %d", i), int64(i*100))
	}

	resp, err := s.service.GetProducts(&ProductListRequest{Page: 1, Limit: 2})
	s.NoError(err)
	s.Len(resp.Products, 2)
	s.Equal(int64(5), resp.Pagination.Total)
	s.Equal(3, resp.Pagination.TotalPages)
	s.True(resp.Pagination.HasNext)
	s.False(resp.Pagination.HasPrev)

	last, err := s.service.GetProducts(&ProductListRequest{Page: 3, Limit: 2})
	s.NoError(err)
	s.Len(last.Products, 1)
	s.False(last.Pagination.HasNext)
	s.True(last.Pagination.HasPrev)
}

func (s *CatalogServiceTestSuite) TestGetProductsFiltersInactive() {
	active := s.createProduct("Active Part", 100)
	inactive := s.createProduct("Inactive Part", 100)

	off := false
	_, err := s.service.UpdateProduct(inactive.ID, &ProductUpdateRequest{IsActive: &off})
	s.NoError(err)

	resp, err := s.service.GetProducts(&ProductListRequest{})
	s.NoError(err)
	s.Require().Len(resp.Products, 1)
	s.Equal(active.ID, resp.Products[0].ID)
}

func (s *CatalogServiceTestSuite) TestGetProductsSortByPrice() {
	s.createProduct("Mid", 200)
	s.createProduct("Cheap", 100)
	s.createProduct("Expensive", 300)

	resp, err := s.service.GetProducts(&ProductListRequest{SortBy: "price", SortOrder: "asc"})
	s.NoError(err)
	s.Require().Len(resp.Products, 3)
	s.Equal("Cheap", resp.Products[0].Name)
	s.Equal("Expensive", resp.Products[2].Name)
}

func (s *CatalogServiceTestSuite) TestSearchProducts() {
	brand := BrandCategory{Name: "Honda"}
	s.NoError(s.db.Create(&brand).Error)

	s.createProduct("Turbocharger Kit", 500000)
	s.createProduct("Turbo Timer", 9900)
	s.createProduct("Exhaust Tip", 2900)

	_, err := s.service.CreateProduct(&ProductCreateRequest{
		Name:            "Civic Turbo Inlet",
		Price:           14900,
		BrandCategoryID: &brand.ID,
	})
	s.NoError(err)

	// Case-insensitive substring match
	results, err := s.service.SearchProducts("TURBO", 0)
	s.NoError(err)
	s.Len(results, 3)

	// Brand scoping narrows the match
	results, err = s.service.SearchProducts("turbo", brand.ID)
	s.NoError(err)
	s.Require().Len(results, 1)
	s.Equal("Civic Turbo Inlet", results[0].Name)
}

func (s *CatalogServiceTestSuite) TestUpdateProduct() {
	product := s.createProduct("HKS Blow Off Valve", 19900)

	name := "HKS SSQV4 Blow Off Valve"
	price := int64(24900)
	updated, err := s.service.UpdateProduct(product.ID, &ProductUpdateRequest{
		Name:  &name,
		Price: &price,
	})
	s.NoError(err)
	s.Equal(name, updated.Name)
	s.Equal(price, updated.Price)
}

func (s *CatalogServiceTestSuite) TestUpdateProductNameConflict() {
	s.createProduct("Part A", 100)
	b := s.createProduct("Part B", 100)

	name := "Part A"
	_, err := s.service.UpdateProduct(b.ID, &ProductUpdateRequest{Name: &name})
	s.ErrorIs(err, apperr.ErrConflict)
}

func (s *CatalogServiceTestSuite) TestDeleteProduct() {
	product := s.createProduct("Old Part", 100)

	s.NoError(s.service.DeleteProduct(product.ID))

	_, err := s.service.GetProduct(product.ID)
	s.ErrorIs(err, apperr.ErrNotFound)

	// Soft delete keeps the row
	var count int64
	s.NoError(s.db.Unscoped().Model(&Product{}).Where("id = ?", product.ID).Count(&count).Error)
	s.Equal(int64(1), count)

	s.ErrorIs(s.service.DeleteProduct(product.ID), apperr.ErrNotFound)
}

func (s *CatalogServiceTestSuite) TestStringListRoundTrip() {
	product, err := s.service.CreateProduct(&ProductCreateRequest{
		Name:   "Coilover Set",
		Price:  129900,
		Tags:   []string{"suspension", "track"},
		Images: []string{"/uploads/coilover-1.jpg", "/uploads/coilover-2.jpg"},
	})
	s.NoError(err)

	var stored Product
	s.NoError(s.db.First(&stored, product.ID).Error)
	s.Equal(StringList{"suspension", "track"}, stored.Tags)
	s.Len(stored.Images, 2)
}
