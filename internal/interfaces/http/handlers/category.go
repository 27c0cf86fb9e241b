// internal/interfaces/http/handlers/category.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CategoryHandler handles part, brand and model category endpoints
type CategoryHandler struct {
	categoryService *catalog.CategoryService
	config          *config.Config
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB, cfg *config.Config) *CategoryHandler {
	return &CategoryHandler{
		categoryService: catalog.NewCategoryService(db, cfg),
		config:          cfg,
	}
}

// GetPartCategories lists part categories
func (h *CategoryHandler) GetPartCategories(c *gin.Context) {
	categories, err := h.categoryService.GetPartCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetBrandCategories lists brand categories with their models
func (h *CategoryHandler) GetBrandCategories(c *gin.Context) {
	categories, err := h.categoryService.GetBrandCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetModelCategories lists model categories, optionally by brand
func (h *CategoryHandler) GetModelCategories(c *gin.Context) {
	var brandCategoryID uint
	if raw := c.Query("brand_category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand category ID"})
			return
		}
		brandCategoryID = uint(id)
	}

	categories, err := h.categoryService.GetModelCategories(brandCategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// CreatePartCategory creates a part category, admin only
func (h *CategoryHandler) CreatePartCategory(c *gin.Context) {
	var req catalog.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	category, err := h.categoryService.CreatePartCategory(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Part category created successfully", "data": category})
}

// CreateBrandCategory creates a brand category, admin only
func (h *CategoryHandler) CreateBrandCategory(c *gin.Context) {
	var req catalog.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	category, err := h.categoryService.CreateBrandCategory(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Brand category created successfully", "data": category})
}

// CreateModelCategory creates a model category, admin only
func (h *CategoryHandler) CreateModelCategory(c *gin.Context) {
	var req catalog.ModelCategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	category, err := h.categoryService.CreateModelCategory(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Model category created successfully", "data": category})
}

// DeletePartCategory deletes a part category, admin only
func (h *CategoryHandler) DeletePartCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categoryService.DeletePartCategory(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Part category deleted successfully"})
}

// DeleteBrandCategory deletes a brand category, admin only
func (h *CategoryHandler) DeleteBrandCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categoryService.DeleteBrandCategory(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brand category deleted successfully"})
}

// DeleteModelCategory deletes a model category, admin only
func (h *CategoryHandler) DeleteModelCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categoryService.DeleteModelCategory(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Model category deleted successfully"})
}
