package services_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"teslo/internal/apperrors"
	"teslo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_NewImageName(t *testing.T) {
	svc, err := services.NewFileService(t.TempDir(), "http://localhost:3000/api/")
	require.NoError(t, err)

	name, err := svc.NewImageName("Photo.JPG")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}\.jpg$`), name)
	assert.Equal(t, "http://localhost:3000/api/files/product/"+name, svc.SecureURL(name))

	for _, bad := range []string{"doc.pdf", "noext", "archive.png.zip"} {
		_, err := svc.NewImageName(bad)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), bad)
	}
}

func TestFileService_ImagePath(t *testing.T) {
	dir := t.TempDir()
	svc, err := services.NewFileService(dir, "http://localhost:3000/api")
	require.NoError(t, err)

	name := "0c5d8cc3-455e-4829-a833-19e3d81ae4a6.png"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644))

	path, err := svc.ImagePath(name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), path)

	_, err = svc.ImagePath("7b0b2c6e-8a55-4a8e-9d7e-3f1a2b3c4d5e.png")
	appErr := assertKind(t, err, apperrors.KindNotFound)
	assert.Equal(t, "No product found with image 7b0b2c6e-8a55-4a8e-9d7e-3f1a2b3c4d5e.png", appErr.Message)

	_, err = svc.ImagePath("../secret.png")
	assertKind(t, err, apperrors.KindValidation)
}
