package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"muro/internal/config"
	"muro/internal/models"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/muro/uploads"
	DefaultImageMaxUploadSizeMB = 10
)

var allowedImageMIMEs = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService stores graffiti images on disk and hands back the public URL
// under which the server serves them.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.ImageUploadDir != "" {
			uploadDir = cfg.ImageUploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// PublicDir is the directory the server exposes under /media/public.
func (s *ImageService) PublicDir() string {
	return filepath.Join(s.uploadDir, "public")
}

// Upload validates and stores an image, returning its public URL. The stored
// name is "<unix timestamp>-<random>.<ext>" so concurrent uploads never
// collide and the original filename never reaches the filesystem.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	ext, ok := allowedImageMIMEs[detectedType]
	if !ok {
		return "", models.NewValidationError("Invalid image type")
	}

	// Decode the header to confirm the body really is the image the sniffed
	// MIME claims, not just a forged magic number.
	if _, _, err := image.DecodeConfig(bytes.NewReader(in.Content)); err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	dir := s.PublicDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", models.NewStorageError(err)
	}

	name := fmt.Sprintf("%d-%s.%s", time.Now().Unix(), uuid.New().String()[:8], ext)
	if err := os.WriteFile(filepath.Join(dir, name), in.Content, 0o644); err != nil {
		return "", models.NewStorageError(err)
	}

	return "/media/public/" + name, nil
}
