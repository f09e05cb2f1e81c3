package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"teslo/internal/apperrors"
	"teslo/internal/dto"

	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

// FileService names and locates uploaded product images on local disk.
type FileService struct {
	uploadDir string
	hostAPI   string
}

// NewFileService creates the upload directory when it does not exist.
func NewFileService(uploadDir, hostAPI string) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", uploadDir, err)
	}
	return &FileService{
		uploadDir: uploadDir,
		hostAPI:   strings.TrimRight(hostAPI, "/"),
	}, nil
}

// NewImageName returns "<uuid>.<ext>" for an accepted upload name.
func (s *FileService) NewImageName(original string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	if !allowedImageExtensions[ext] {
		return "", apperrors.Validation("Make sure that the file is an image (jpg, jpeg, png, gif)")
	}
	return fmt.Sprintf("%s.%s", uuid.NewString(), ext), nil
}

// Path is where name is stored.
func (s *FileService) Path(name string) string {
	return filepath.Join(s.uploadDir, name)
}

// SecureURL is the public URL of an uploaded image.
func (s *FileService) SecureURL(name string) string {
	return fmt.Sprintf("%s/files/product/%s", s.hostAPI, name)
}

// ImagePath checks name and returns the path of an existing image.
func (s *FileService) ImagePath(name string) (string, error) {
	name, err := dto.ParseImageFileName(name)
	if err != nil {
		return "", err
	}

	path := s.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.NotFound("No product found with image %s", name)
		}
		return "", apperrors.Internal(apperrors.InternalMessage, err)
	}
	if info.IsDir() {
		return "", apperrors.NotFound("No product found with image %s", name)
	}
	return path, nil
}
