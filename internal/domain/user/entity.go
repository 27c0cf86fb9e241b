// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents the user entity
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password         string    `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	IsAdmin          bool      `gorm:"default:false" json:"is_admin"`
	IsVerified       bool      `gorm:"default:false" json:"is_verified"`
	VerificationCode string    `gorm:"size:255;index" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// Address represents a user delivery or billing address
type Address struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	StreetAddress string    `gorm:"size:255;not null" json:"street_address"`
	City          string    `gorm:"size:100;not null" json:"city"`
	State         string    `gorm:"size:100" json:"state"`
	PostalCode    string    `gorm:"size:20" json:"postal_code"`
	Country       string    `gorm:"size:100;not null" json:"country"`
	IsBilling     bool      `gorm:"default:false" json:"is_billing"`
	IsShipping    bool      `gorm:"default:false" json:"is_shipping"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	return nil
}
