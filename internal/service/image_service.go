package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/tigoviajes/catalog/internal/domain"
)

// ImageService validates admin image uploads and stores them
type ImageService struct {
	store domain.FileRepository
}

// NewImageService creates a new ImageService
func NewImageService(store domain.FileRepository) *ImageService {
	return &ImageService{store: store}
}

// Upload checks bucket, content type and size, then stores the image under
// "<bucket>/<uuid>.<ext>" and returns its public URL.
func (s *ImageService) Upload(ctx context.Context, bucket string, data []byte) (string, error) {
	if !domain.IsUploadBucket(bucket) {
		return "", domain.ErrInvalidBucket
	}
	if len(data) == 0 || len(data) > domain.MaxImageSize {
		return "", domain.ErrInvalidImage
	}

	contentType := http.DetectContentType(data)
	ext, ok := domain.AllowedImageTypes[contentType]
	if !ok {
		return "", domain.ErrInvalidImage
	}

	key := fmt.Sprintf("%s/%s.%s", bucket, uuid.NewString(), ext)
	url, err := s.store.Upload(ctx, data, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return url, nil
}
