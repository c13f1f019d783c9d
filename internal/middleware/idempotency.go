package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// IdempotencyKeyPrefix namespaces replayable responses in Redis
const IdempotencyKeyPrefix = "catalog:idempotency:"

// IdempotencyMiddleware replays the stored response of an admin mutation that
// is retried with the same X-Correlation-ID within ttl. A nil client disables it.
func IdempotencyMiddleware(redisClient *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Next()
		}

		// Only apply to mutating methods
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPatch, fiber.MethodPut, fiber.MethodDelete:
		default:
			return c.Next()
		}

		correlationID := c.Get("X-Correlation-ID")
		if correlationID == "" {
			return c.Next()
		}

		key := fmt.Sprintf("%s%s:%s %s", IdempotencyKeyPrefix, correlationID, c.Method(), c.Path())

		cached, err := redisClient.Get(c.UserContext(), key).Bytes()
		if err == nil && len(cached) > 0 {
			c.Set("X-Idempotent-Replay", "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Cache successful responses (2xx status codes)
		statusCode := c.Response().StatusCode()
		if statusCode >= 200 && statusCode < 300 {
			body := append([]byte(nil), c.Response().Body()...)
			if len(body) > 0 {
				go func() {
					bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					if err := redisClient.Set(bgCtx, key, body, ttl).Err(); err != nil {
						log.Printf("[Admin] failed to store idempotent response: %v", err)
					}
				}()
			}
		}

		return nil
	}
}
