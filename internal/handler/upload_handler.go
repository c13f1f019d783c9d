package handler

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/service"
)

// UploadHandler handles admin image uploads
type UploadHandler struct {
	images *service.ImageService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(images *service.ImageService) *UploadHandler {
	return &UploadHandler{images: images}
}

// Upload handles POST /v1/admin/uploads/:bucket with a multipart "file" field
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.images == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "image storage is not configured",
		})
	}

	bucket := c.Params("bucket")
	if !domain.IsUploadBucket(bucket) {
		return respondError(c, domain.ErrInvalidBucket)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing 'file' field in form data",
		})
	}
	if fileHeader.Size > domain.MaxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file size exceeds maximum of %dMB", domain.MaxImageSize/(1024*1024)),
		})
	}

	fileHandle, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer fileHandle.Close()

	data, err := io.ReadAll(io.LimitReader(fileHandle, domain.MaxImageSize+1))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	url, err := h.images.Upload(c.UserContext(), bucket, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
