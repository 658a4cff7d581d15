package middleware

import (
	"time"

	"talenthub/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// AuthRateLimiter limits credential endpoints per client IP. A nil storage
// keeps counters in process memory.
func AuthRateLimiter(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           storage,
		KeyGenerator:      func(c *fiber.Ctx) string { return "auth:" + c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Message: "Too many attempts, please try again later",
			})
		},
	})
}
