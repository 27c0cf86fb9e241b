// internal/domain/upload/service.go
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles file upload business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UploadImage stores a product image on disk under a generated
// filename and records it in the database
func (s *Service) UploadImage(file multipart.File, header *multipart.FileHeader, uploadedBy uint) (*UploadedFile, error) {
	if err := s.validateImageFile(header); err != nil {
		return nil, err
	}

	filename := s.generateUniqueFilename(header.Filename)
	fullPath := filepath.Join(s.config.Upload.LocalPath, filename)

	if err := os.MkdirAll(s.config.Upload.LocalPath, 0755); err != nil {
		return nil, apperr.Internal("failed to create upload directory", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, apperr.Internal("failed to create file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, apperr.Internal("failed to save file", err)
	}

	uploadedFile := UploadedFile{
		OriginalName: header.Filename,
		Filename:     filename,
		Path:         filename,
		URL:          fmt.Sprintf("%s/uploads/%s", s.config.App.BaseURL, filename),
		MimeType:     s.getMimeType(header.Filename),
		Size:         header.Size,
		UploadedBy:   uploadedBy,
	}

	if err := s.db.Create(&uploadedFile).Error; err != nil {
		// Clean up file if database insert fails
		os.Remove(fullPath)
		return nil, apperr.Internal("failed to save file info", err)
	}

	return &uploadedFile, nil
}

// GetImage retrieves an uploaded file record
func (s *Service) GetImage(id uint) (*UploadedFile, error) {
	var uploadedFile UploadedFile
	if err := s.db.First(&uploadedFile, id).Error; err != nil {
		return nil, apperr.NotFound("Image not found", err)
	}
	return &uploadedFile, nil
}

// DeleteImage removes an uploaded file and its record
func (s *Service) DeleteImage(id uint) error {
	var uploadedFile UploadedFile
	if err := s.db.First(&uploadedFile, id).Error; err != nil {
		return apperr.NotFound("Image not found", err)
	}

	fullPath := filepath.Join(s.config.Upload.LocalPath, uploadedFile.Path)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return apperr.Internal("failed to delete file", err)
	}

	if err := s.db.Delete(&uploadedFile).Error; err != nil {
		return apperr.Internal("failed to delete file record", err)
	}
	return nil
}

// validateImageFile checks extension and size limits
func (s *Service) validateImageFile(header *multipart.FileHeader) error {
	if header.Size > s.config.Upload.MaxSize {
		return apperr.InvalidArgument(fmt.Sprintf("File too large, maximum is %d bytes", s.config.Upload.MaxSize), nil)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return apperr.InvalidArgument(fmt.Sprintf("File type .%s is not allowed", ext), nil)
}

// generateUniqueFilename keeps the original extension behind a uuid
func (s *Service) generateUniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.New().String() + ext
}

// getMimeType maps a filename extension to a mime type
func (s *Service) getMimeType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
