// internal/domain/catalog/category_service.go
package catalog

import (
	"errors"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// CategoryService handles part, brand and model category logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents part or brand category creation data
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required"`
	Logo string `json:"logo"`
}

// ModelCategoryCreateRequest represents model category creation data
type ModelCategoryCreateRequest struct {
	Name            string `json:"name" binding:"required"`
	BrandCategoryID uint   `json:"brand_category_id" binding:"required"`
}

// GetPartCategories retrieves all part categories
func (s *CategoryService) GetPartCategories() ([]PartCategory, error) {
	var categories []PartCategory
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Internal("failed to retrieve part categories", err)
	}
	return categories, nil
}

// GetBrandCategories retrieves all brand categories with their models
func (s *CategoryService) GetBrandCategories() ([]BrandCategory, error) {
	var categories []BrandCategory
	if err := s.db.Preload("Models").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Internal("failed to retrieve brand categories", err)
	}
	return categories, nil
}

// GetModelCategories retrieves model categories, optionally scoped to a brand
func (s *CategoryService) GetModelCategories(brandCategoryID uint) ([]ModelCategory, error) {
	var categories []ModelCategory
	query := s.db.Order("name ASC")
	if brandCategoryID > 0 {
		query = query.Where("brand_category_id = ?", brandCategoryID)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, apperr.Internal("failed to retrieve model categories", err)
	}
	return categories, nil
}

// CreatePartCategory creates a new part category
func (s *CategoryService) CreatePartCategory(req *CategoryCreateRequest) (*PartCategory, error) {
	var existing PartCategory
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Part category already exists", nil)
	}

	category := PartCategory{Name: req.Name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperr.Internal("failed to create part category", err)
	}
	return &category, nil
}

// CreateBrandCategory creates a new brand category
func (s *CategoryService) CreateBrandCategory(req *CategoryCreateRequest) (*BrandCategory, error) {
	var existing BrandCategory
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Brand category already exists", nil)
	}

	category := BrandCategory{Name: req.Name, Logo: req.Logo}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperr.Internal("failed to create brand category", err)
	}
	return &category, nil
}

// CreateModelCategory creates a new model category under a brand
func (s *CategoryService) CreateModelCategory(req *ModelCategoryCreateRequest) (*ModelCategory, error) {
	var brand BrandCategory
	if err := s.db.First(&brand, req.BrandCategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Brand category not found", err)
		}
		return nil, apperr.Internal("failed to retrieve brand category", err)
	}

	var existing ModelCategory
	if err := s.db.Where("name = ? AND brand_category_id = ?", req.Name, req.BrandCategoryID).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Model category already exists for this brand", nil)
	}

	category := ModelCategory{Name: req.Name, BrandCategoryID: req.BrandCategoryID}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperr.Internal("failed to create model category", err)
	}
	return &category, nil
}

// DeletePartCategory deletes a part category
func (s *CategoryService) DeletePartCategory(id uint) error {
	result := s.db.Delete(&PartCategory{}, id)
	if result.Error != nil {
		return apperr.Internal("failed to delete part category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Part category not found", nil)
	}
	return nil
}

// DeleteBrandCategory deletes a brand category and its models
func (s *CategoryService) DeleteBrandCategory(id uint) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("brand_category_id = ?", id).Delete(&ModelCategory{}).Error; err != nil {
		tx.Rollback()
		return apperr.Internal("failed to delete brand models", err)
	}

	result := tx.Delete(&BrandCategory{}, id)
	if result.Error != nil {
		tx.Rollback()
		return apperr.Internal("failed to delete brand category", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return apperr.NotFound("Brand category not found", nil)
	}

	return tx.Commit().Error
}

// DeleteModelCategory deletes a model category
func (s *CategoryService) DeleteModelCategory(id uint) error {
	result := s.db.Delete(&ModelCategory{}, id)
	if result.Error != nil {
		return apperr.Internal("failed to delete model category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Model category not found", nil)
	}
	return nil
}
