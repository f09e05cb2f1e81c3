package dto

import (
	"fmt"
	"path/filepath"

	"teslo/internal/apperrors"

	"github.com/google/uuid"
)

// IsUUID reports whether s is a hyphenated UUID.
func IsUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

// ParseImageFileName accepts names shaped like "<uuid>.<ext>".
func ParseImageFileName(name string) (string, error) {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	if len(ext) < 2 || !IsUUID(base) {
		return "", apperrors.Validation(fmt.Sprintf("%s is not a valid filename", name))
	}
	return name, nil
}
