// internal/domain/user/address_service.go
package user

import (
	"errors"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// AddressService handles address business logic
type AddressService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB, cfg *config.Config) *AddressService {
	return &AddressService{
		db:     db,
		config: cfg,
	}
}

// CreateAddressRequest represents address creation data
type CreateAddressRequest struct {
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country" binding:"required"`
	IsBilling     bool   `json:"is_billing"`
	IsShipping    bool   `json:"is_shipping"`
}

// UpdateAddressRequest represents address update data
type UpdateAddressRequest struct {
	StreetAddress *string `json:"street_address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	PostalCode    *string `json:"postal_code"`
	Country       *string `json:"country"`
	IsBilling     *bool   `json:"is_billing"`
	IsShipping    *bool   `json:"is_shipping"`
}

// GetUserAddresses retrieves all addresses for a user
func (s *AddressService) GetUserAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&addresses).Error; err != nil {
		return nil, apperr.Internal("failed to retrieve addresses", err)
	}
	return addresses, nil
}

// GetAddress retrieves a specific address owned by a user
func (s *AddressService) GetAddress(userID, addressID uint) (*Address, error) {
	var address Address
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Address not found", result.Error)
		}
		return nil, apperr.Internal("failed to retrieve address", result.Error)
	}
	return &address, nil
}

// CreateAddress creates a new address for a user
func (s *AddressService) CreateAddress(userID uint, req *CreateAddressRequest) (*Address, error) {
	address := Address{
		UserID:        userID,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		IsBilling:     req.IsBilling,
		IsShipping:    req.IsShipping,
	}

	if err := s.db.Create(&address).Error; err != nil {
		return nil, apperr.Internal("failed to create address", err)
	}

	return &address, nil
}

// UpdateAddress updates an existing address
func (s *AddressService) UpdateAddress(userID, addressID uint, req *UpdateAddressRequest) (*Address, error) {
	address, err := s.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.StreetAddress != nil {
		updates["street_address"] = *req.StreetAddress
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.IsBilling != nil {
		updates["is_billing"] = *req.IsBilling
	}
	if req.IsShipping != nil {
		updates["is_shipping"] = *req.IsShipping
	}

	if len(updates) > 0 {
		if err := s.db.Model(address).Updates(updates).Error; err != nil {
			return nil, apperr.Internal("failed to update address", err)
		}
	}

	return s.GetAddress(userID, addressID)
}

// DeleteAddress deletes an address owned by a user
func (s *AddressService) DeleteAddress(userID, addressID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return apperr.Internal("failed to delete address", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Address not found", nil)
	}
	return nil
}
