package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tigoviajes/catalog/internal/domain"
)

// Context keys for storing admin info
const (
	AdminUIDKey   = "adminUID"
	AdminEmailKey = "adminEmail"
)

// VerifyAdminToken validates the admin session JWT. The email is checked
// against the allow-list on every request, so removing an address revokes
// its sessions.
func VerifyAdminToken(jwtSecret string, isAdmin func(email string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := BearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		// Parse and validate token
		token, err := jwt.ParseWithClaims(tokenString, &domain.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*domain.AdminClaims)
		if !ok || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		if !isAdmin(claims.Email) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": domain.ErrUnauthorizedAdmin.Error(),
			})
		}

		c.Locals(AdminUIDKey, claims.UID)
		c.Locals(AdminEmailKey, claims.Email)

		return c.Next()
	}
}

// GetAdminEmail returns the email of the authenticated admin.
// Should only be called after VerifyAdminToken.
func GetAdminEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(AdminEmailKey).(string)
	return email
}
