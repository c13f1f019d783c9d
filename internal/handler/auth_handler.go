package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/middleware"
	"github.com/tigoviajes/catalog/internal/service"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/admin/auth/login with the Firebase ID token as Bearer
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing Authorization header",
		})
	}

	resp, err := h.authService.Login(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorizedAdmin) {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}

// Me handles GET /v1/admin/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"uid":   c.Locals(middleware.AdminUIDKey),
		"email": middleware.GetAdminEmail(c),
	})
}
