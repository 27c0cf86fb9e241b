// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"

	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"github.com/pitstop-performance/backend/internal/pkg/auth"
	"github.com/pitstop-performance/backend/internal/pkg/email"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	emailService    *email.EmailService
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		emailService:    email.NewEmailService(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account and sends a verification email
func (s *Service) Register(req *RegisterRequest) (*User, error) {
	// Check if username or email is already taken
	var existingUser User
	result := s.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existingUser)
	if result.Error == nil {
		return nil, apperr.Conflict("Username or Email is already registered", nil)
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to check existing user", result.Error)
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.InvalidArgument(err.Error(), err)
	}

	verificationCode, err := auth.GenerateVerificationCode()
	if err != nil {
		return nil, apperr.Internal("failed to generate verification code", err)
	}

	user := User{
		Username:         req.Username,
		Email:            req.Email,
		Password:         hashedPassword,
		IsActive:         true,
		IsAdmin:          false,
		IsVerified:       false,
		VerificationCode: verificationCode,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	// Verification mail is best effort, registration succeeds either way
	if err := s.emailService.SendVerificationEmail(user.Email, user.Username, verificationCode); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to send verification email")
	}

	user.Password = ""
	return &user, nil
}

// Login authenticates a user by username and password
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var user User
	result := s.db.Where("username = ? AND is_active = ?", req.Username, true).First(&user)
	if result.Error != nil {
		return nil, apperr.Auth("Incorrect username or password", result.Error)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, apperr.Auth("Incorrect username or password", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, apperr.Internal("failed to generate access token", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal("failed to generate refresh token", err)
	}

	user.Password = ""

	return &AuthResponse{
		User:         &user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// RefreshToken generates new tokens using a refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Auth("Invalid refresh token", err)
	}

	var user User
	result := s.db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&user)
	if result.Error != nil {
		return nil, apperr.Auth("User not found or inactive", result.Error)
	}

	newAccessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, apperr.Internal("failed to generate access token", err)
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal("failed to generate refresh token", err)
	}

	user.Password = ""

	return &AuthResponse{
		User:         &user,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var user User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user)
	if result.Error != nil {
		return nil, apperr.NotFound("User not found", result.Error)
	}

	user.Password = ""
	return &user, nil
}

// VerifyEmail marks the account matching the verification code as verified
func (s *Service) VerifyEmail(code string) (*User, error) {
	if code == "" {
		return nil, apperr.InvalidArgument("Verification code is required", nil)
	}

	var user User
	result := s.db.Where("verification_code = ?", code).First(&user)
	if result.Error != nil {
		return nil, apperr.NotFound("Invalid verification code", result.Error)
	}

	updates := map[string]interface{}{
		"is_verified":       true,
		"verification_code": "",
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("failed to verify email", err)
	}

	user.IsVerified = true
	user.VerificationCode = ""
	user.Password = ""

	logrus.WithField("user_id", user.ID).Info(fmt.Sprintf("Email verified for user %s", user.Username))
	return &user, nil
}

// GetUserByUsername retrieves user by username
func (s *Service) GetUserByUsername(username string) (*User, error) {
	var user User
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		return nil, apperr.NotFound("User not found", result.Error)
	}

	user.Password = ""
	return &user, nil
}
