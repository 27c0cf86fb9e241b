// internal/domain/catalog/category_service_test.go
package catalog

import (
	"testing"

	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CategoryService
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewCategoryService(s.db, testConfig())
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

func (s *CategoryServiceTestSuite) TestPartCategoryLifecycle() {
	created, err := s.service.CreatePartCategory(&CategoryCreateRequest{Name: "Brakes"})
	s.NoError(err)
	s.Equal("Brakes", created.Name)

	_, err = s.service.CreatePartCategory(&CategoryCreateRequest{Name: "Brakes"})
	s.ErrorIs(err, apperr.ErrConflict)

	categories, err := s.service.GetPartCategories()
	s.NoError(err)
	s.Len(categories, 1)

	s.NoError(s.service.DeletePartCategory(created.ID))
	s.ErrorIs(s.service.DeletePartCategory(created.ID), apperr.ErrNotFound)
}

func (s *CategoryServiceTestSuite) TestBrandCategoriesSortedWithModels() {
	subaru, err := s.service.CreateBrandCategory(&CategoryCreateRequest{Name: "Subaru", Logo: "/uploads/subaru.png"})
	s.NoError(err)
	_, err = s.service.CreateBrandCategory(&CategoryCreateRequest{Name: "Honda"})
	s.NoError(err)

	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "WRX", BrandCategoryID: subaru.ID})
	s.NoError(err)
	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "BRZ", BrandCategoryID: subaru.ID})
	s.NoError(err)

	brands, err := s.service.GetBrandCategories()
	s.NoError(err)
	s.Require().Len(brands, 2)
	s.Equal("Honda", brands[0].Name)
	s.Equal("Subaru", brands[1].Name)
	s.Len(brands[1].Models, 2)
}

func (s *CategoryServiceTestSuite) TestModelCategoryRequiresBrand() {
	_, err := s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "WRX", BrandCategoryID: 999})
	s.ErrorIs(err, apperr.ErrNotFound)
}

func (s *CategoryServiceTestSuite) TestModelCategoryDuplicatePerBrand() {
	subaru, err := s.service.CreateBrandCategory(&CategoryCreateRequest{Name: "Subaru"})
	s.NoError(err)
	honda, err := s.service.CreateBrandCategory(&CategoryCreateRequest{Name: "Honda"})
	s.NoError(err)

	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "GT", BrandCategoryID: subaru.ID})
	s.NoError(err)

	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "GT", BrandCategoryID: subaru.ID})
	s.ErrorIs(err, apperr.ErrConflict)

	// Same name under a different brand is fine
	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "GT", BrandCategoryID: honda.ID})
	s.NoError(err)
}

func (s *CategoryServiceTestSuite) TestDeleteBrandCascadesModels() {
	subaru, err := s.service.CreateBrandCategory(&CategoryCreateRequest{Name: "Subaru"})
	s.NoError(err)
	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "WRX", BrandCategoryID: subaru.ID})
	s.NoError(err)

	s.NoError(s.service.DeleteBrandCategory(subaru.ID))

	models, err := s.service.GetModelCategories(subaru.ID)
	s.NoError(err)
	s.Empty(models)

	s.ErrorIs(s.service.DeleteBrandCategory(subaru.ID), apperr.ErrNotFound)
}

func (s *CategoryServiceTestSuite) TestGetModelCategoriesScopedToBrand() {
	subaru, err := s.service.CreateBrandCategory(&CategoryCreateRequest{Name: "Subaru"})
	s.NoError(err)
	honda, err := s.service.CreateBrandCategory(&CategoryCreateRequest{Name: "Honda"})
	s.NoError(err)

	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "WRX", BrandCategoryID: subaru.ID})
	s.NoError(err)
	_, err = s.service.CreateModelCategory(&ModelCategoryCreateRequest{Name: "Civic", BrandCategoryID: honda.ID})
	s.NoError(err)

	all, err := s.service.GetModelCategories(0)
	s.NoError(err)
	s.Len(all, 2)

	scoped, err := s.service.GetModelCategories(honda.ID)
	s.NoError(err)
	s.Require().Len(scoped, 1)
	s.Equal("Civic", scoped[0].Name)
}
