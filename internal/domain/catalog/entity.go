// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList stores a list of strings as a JSON column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for string list: %T", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Product represents a catalog product
type Product struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Price           int64          `gorm:"not null" json:"price"` // Price in cents
	Thumbnail       string         `gorm:"size:500" json:"thumbnail"`
	Tags            StringList     `gorm:"type:text" json:"tags"`
	Images          StringList     `gorm:"type:text" json:"images"`
	PartCategoryID  *uint          `gorm:"index" json:"part_category_id"`
	BrandCategoryID *uint          `gorm:"index" json:"brand_category_id"`
	ModelCategoryID *uint          `gorm:"index" json:"model_category_id"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	PartCategory  *PartCategory  `gorm:"foreignKey:PartCategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"part_category,omitempty"`
	BrandCategory *BrandCategory `gorm:"foreignKey:BrandCategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"brand_category,omitempty"`
	ModelCategory *ModelCategory `gorm:"foreignKey:ModelCategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"model_category,omitempty"`
}

// PartCategory groups products by part type
type PartCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BrandCategory groups products by vehicle brand
type BrandCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Logo      string    `gorm:"size:500" json:"logo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Models []ModelCategory `gorm:"foreignKey:BrandCategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"models,omitempty"`
}

// ModelCategory groups products by vehicle model within a brand
type ModelCategory struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null;size:255" json:"name"`
	BrandCategoryID uint      `gorm:"not null;index" json:"brand_category_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string       { return "products" }
func (PartCategory) TableName() string  { return "part_categories" }
func (BrandCategory) TableName() string { return "brand_categories" }
func (ModelCategory) TableName() string { return "model_categories" }
