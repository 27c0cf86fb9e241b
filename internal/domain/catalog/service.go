// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"strings"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
	PartCategoryID  uint   `form:"part_category_id"`
	BrandCategoryID uint   `form:"brand_category_id"`
	ModelCategoryID uint   `form:"model_category_id"`
	SortBy          string `form:"sort_by,default=created_at"`
	SortOrder       string `form:"sort_order,default=desc"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Price           int64    `json:"price" binding:"required"`
	Thumbnail       string   `json:"thumbnail"`
	Tags            []string `json:"tags"`
	Images          []string `json:"images"`
	PartCategoryID  *uint    `json:"part_category_id"`
	BrandCategoryID *uint    `json:"brand_category_id"`
	ModelCategoryID *uint    `json:"model_category_id"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Price           *int64    `json:"price"`
	Thumbnail       *string   `json:"thumbnail"`
	Tags            *[]string `json:"tags"`
	Images          *[]string `json:"images"`
	PartCategoryID  *uint     `json:"part_category_id"`
	BrandCategoryID *uint     `json:"brand_category_id"`
	ModelCategoryID *uint     `json:"model_category_id"`
	IsActive        *bool     `json:"is_active"`
}

// ProductResponse represents product response with pagination
type ProductResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	var products []Product
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{}).
		Preload("PartCategory").
		Preload("BrandCategory").
		Preload("ModelCategory").
		Where("is_active = ?", true)

	if req.PartCategoryID > 0 {
		query = query.Where("part_category_id = ?", req.PartCategoryID)
	}
	if req.BrandCategoryID > 0 {
		query = query.Where("brand_category_id = ?", req.BrandCategoryID)
	}
	if req.ModelCategoryID > 0 {
		query = query.Where("model_category_id = ?", req.ModelCategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Internal("failed to count products", err)
	}

	query = query.Order(s.buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, apperr.Internal("failed to retrieve products", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	pagination := Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    req.Page < totalPages,
		HasPrev:    req.Page > 1,
	}

	return &ProductResponse{
		Products:   products,
		Pagination: pagination,
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("PartCategory").
		Preload("BrandCategory").
		Preload("ModelCategory").
		Where("id = ?", id).
		First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found", result.Error)
		}
		return nil, apperr.Internal("failed to retrieve product", result.Error)
	}

	return &product, nil
}

// SearchProducts searches products by name, optionally scoped to a brand
func (s *Service) SearchProducts(term string, brandCategoryID uint) ([]Product, error) {
	var products []Product

	query := s.db.Model(&Product{}).
		Preload("PartCategory").
		Preload("BrandCategory").
		Preload("ModelCategory").
		Where("is_active = ?", true)

	if term != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if brandCategoryID > 0 {
		query = query.Where("brand_category_id = ?", brandCategoryID)
	}

	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, apperr.Internal("failed to search products", err)
	}

	return products, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	var existing Product
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("Product with this name already exists", nil)
	}

	if req.Price <= 0 {
		return nil, apperr.InvalidArgument("Price must be positive", nil)
	}

	if err := s.validateCategoryRefs(req.PartCategoryID, req.BrandCategoryID, req.ModelCategoryID); err != nil {
		return nil, err
	}

	product := Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Thumbnail:       req.Thumbnail,
		Tags:            StringList(req.Tags),
		Images:          StringList(req.Images),
		PartCategoryID:  req.PartCategoryID,
		BrandCategoryID: req.BrandCategoryID,
		ModelCategoryID: req.ModelCategoryID,
		IsActive:        true,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, apperr.Internal("failed to create product", err)
	}

	return s.GetProduct(product.ID)
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != product.Name {
		var existing Product
		if err := s.db.Where("name = ? AND id <> ?", *req.Name, id).First(&existing).Error; err == nil {
			return nil, apperr.Conflict("Product with this name already exists", nil)
		}
	}
	if req.Price != nil && *req.Price <= 0 {
		return nil, apperr.InvalidArgument("Price must be positive", nil)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Thumbnail != nil {
		updates["thumbnail"] = *req.Thumbnail
	}
	if req.Tags != nil {
		updates["tags"] = StringList(*req.Tags)
	}
	if req.Images != nil {
		updates["images"] = StringList(*req.Images)
	}
	if req.PartCategoryID != nil {
		updates["part_category_id"] = *req.PartCategoryID
	}
	if req.BrandCategoryID != nil {
		updates["brand_category_id"] = *req.BrandCategoryID
	}
	if req.ModelCategoryID != nil {
		updates["model_category_id"] = *req.ModelCategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update product", err)
		}
	}

	return s.GetProduct(id)
}

// DeleteProduct soft deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return apperr.Internal("failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Product not found", nil)
	}
	return nil
}

// validateCategoryRefs checks referenced categories exist
func (s *Service) validateCategoryRefs(partID, brandID, modelID *uint) error {
	if partID != nil {
		var cat PartCategory
		if err := s.db.First(&cat, *partID).Error; err != nil {
			return apperr.NotFound("Part category not found", err)
		}
	}
	if brandID != nil {
		var cat BrandCategory
		if err := s.db.First(&cat, *brandID).Error; err != nil {
			return apperr.NotFound("Brand category not found", err)
		}
	}
	if modelID != nil {
		var cat ModelCategory
		if err := s.db.First(&cat, *modelID).Error; err != nil {
			return apperr.NotFound("Model category not found", err)
		}
	}
	return nil
}

// buildOrderClause builds a safe ORDER BY clause
func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	allowedSortFields := map[string]bool{
		"created_at": true,
		"name":       true,
		"price":      true,
	}

	if !allowedSortFields[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return sortBy + " " + sortOrder
}
