package middleware

import (
	"context"
	"log/slog"
	"strings"

	"talenthub/internal/apperr"
	"talenthub/internal/dto"
	"talenthub/internal/models"

	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "user"

// TokenVerifier resolves a bearer token to its user.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// bearer token and stores the resolved user in the context.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "No token provided, authorization denied",
			})
		}

		user, err := verifier.VerifyToken(c.UserContext(), tokenString)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindAuthentication {
				return err
			}
			slog.Debug("JWT validation failed", "error", err, "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: err.Error(),
			})
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// OptionalAuth resolves the bearer token when one is present. A missing or
// invalid token leaves the request anonymous.
func OptionalAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		user, err := verifier.VerifyToken(c.UserContext(), tokenString)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindAuthentication {
				return err
			}
			return c.Next()
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

// CurrentActor returns the caller as an actor, nil when anonymous.
func CurrentActor(c *fiber.Ctx) *models.Actor {
	return CurrentUser(c).Actor()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
