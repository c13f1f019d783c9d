package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tigoviajes/catalog/internal/domain"
)

// respondError maps domain errors to HTTP statuses; anything unknown is a 500
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSlug):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidSlug),
		errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrInvalidBucket),
		errors.Is(err, domain.ErrTooManyFeatures):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorizedAdmin):
		status = fiber.StatusForbidden
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
