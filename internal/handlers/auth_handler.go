package handlers

import (
	"talenthub/internal/dto"
	"talenthub/internal/middleware"
	"talenthub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and profiles.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes. rateLimit guards the
// credential endpoints and may be nil.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired, rateLimit fiber.Handler) {
	authRoutes := router.Group("/auth")
	if rateLimit != nil {
		authRoutes.Post("/register", rateLimit, h.HandleRegister)
		authRoutes.Post("/login", rateLimit, h.HandleLogin)
	} else {
		authRoutes.Post("/register", h.HandleRegister)
		authRoutes.Post("/login", h.HandleLogin)
	}
	authRoutes.Get("/profile", authRequired, h.HandleGetProfile)
	authRoutes.Put("/profile", authRequired, h.HandleUpdateProfile)
	authRoutes.Get("/check", authRequired, h.HandleCheck)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	res, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	res, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var patch dto.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(err)
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), middleware.CurrentActor(c), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// HandleCheck confirms the bearer token is accepted.
func (h *AuthHandler) HandleCheck(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Authentication is working",
		"user": fiber.Map{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
	})
}
