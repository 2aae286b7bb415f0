package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/sponzo/internal/models"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	UploadBasePath   string
}

var DefaultImageUploadConfig = UploadConfig{
	MaxSizeBytes: 5 * 1024 * 1024, // 5MB
	AllowedMimeTypes: []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	},
	UploadBasePath: "./uploads/",
}

// UploadFile stores fileHeader under <base>/<uploadType>/<uuid><ext> and
// returns the path relative to the upload base.
func UploadFile(c *gin.Context, fileHeader *multipart.FileHeader, uploadType string, configs ...UploadConfig) (string, error) {
	config := DefaultImageUploadConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	if fileHeader.Size > config.MaxSizeBytes {
		return "", models.NewValidationError("image", fmt.Sprintf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024)))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil {
		return "", models.NewValidationError("image", "file is empty or unreadable")
	}
	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(config.AllowedMimeTypes, mimeType) {
		return "", models.NewValidationError("image", fmt.Sprintf("invalid file type. Allowed types: %v", config.AllowedMimeTypes))
	}

	uploadPath := filepath.Join(config.UploadBasePath, uploadType)
	if err := os.MkdirAll(uploadPath, 0o755); err != nil {
		return "", err
	}

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(uploadPath, filename)); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(uploadType, filename)), nil
}

func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}
