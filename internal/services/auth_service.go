package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"talenthub/internal/apperr"
	"talenthub/internal/dto"
	"talenthub/internal/models"
	"talenthub/internal/policy"
	"talenthub/internal/repositories"
	"talenthub/internal/validation"

	"github.com/dgrijalva/jwt-go"
)

const (
	defaultTokenTTL   = 7 * 24 * time.Hour
	defaultBcryptCost = 12
)

const msgInvalidCredentials = "Invalid email or password"

// AuthService handles registration, login and token verification.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithTokenTTL sets how long issued tokens stay valid.
func WithTokenTTL(d time.Duration) AuthOption {
	return func(s *AuthService) { s.tokenTTL = d }
}

// WithBcryptCost sets the cost used when hashing new passwords.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.bcryptCost = cost }
}

// WithClock replaces the wall clock used for token issue and expiry.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   defaultTokenTTL,
		bcryptCost: defaultBcryptCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = models.RoleJobseeker
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Conflict("User with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Store("failed to check existing user", err)
	}

	user := &models.User{Name: req.Name, Email: req.Email}
	if req.Role == models.RoleEmployer {
		var company models.Company
		if req.Company != nil {
			company = *req.Company
		}
		user.SetKind(models.Employer{Company: company})
	} else {
		var profile models.Profile
		if req.Profile != nil {
			profile = *req.Profile
		}
		user.SetKind(models.Jobseeker{Profile: profile})
	}
	if err := user.SetPassword(req.Password, s.bcryptCost); err != nil {
		return nil, apperr.Store("failed to register user", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("User with this email already exists")
		}
		return nil, apperr.Store("failed to register user", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password fail identically.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Authentication(msgInvalidCredentials)
		}
		return nil, apperr.Store("failed to load user", err)
	}
	if !user.CheckPassword(req.Password) {
		return nil, apperr.Authentication(msgInvalidCredentials)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// VerifyToken resolves a bearer token to the user it was issued for.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, apperr.Authentication("No token provided, authorization denied")
	}

	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		slog.Debug("token rejected", "error", err)
		return nil, apperr.Authentication("Token is not valid")
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, apperr.Authentication("Token has expired")
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, apperr.Authentication("Token is not valid")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Authentication("Token is not valid")
		}
		return nil, apperr.Store("failed to load user", err)
	}
	return user, nil
}

// GetProfile returns the public view of the calling user.
func (s *AuthService) GetProfile(ctx context.Context, actor *models.Actor) (*dto.UserResponse, error) {
	user, err := s.loadSelf(ctx, actor)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies name and the sub-record matching the caller's role.
// Role changes and the other role's sub-record are ignored.
func (s *AuthService) UpdateProfile(ctx context.Context, actor *models.Actor, patch dto.ProfilePatch) (*dto.UserResponse, error) {
	user, err := s.loadSelf(ctx, actor)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			user.Name = name
		}
	}
	if patch.Role != nil && *patch.Role != user.Role {
		slog.Debug("ignoring role change", "user_id", user.ID, "requested", *patch.Role)
	}
	switch user.Kind().(type) {
	case models.Jobseeker:
		if patch.Profile != nil {
			user.SetKind(models.Jobseeker{Profile: *patch.Profile})
		}
	case models.Employer:
		if patch.Company != nil {
			user.SetKind(models.Employer{Company: *patch.Company})
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Store("failed to update profile", err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) loadSelf(ctx context.Context, actor *models.Actor) (*models.User, error) {
	if err := policy.Check(actor, policy.UpdateOwnProfile, ""); err != nil {
		return nil, apperr.Authentication("Authentication required")
	}
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Store("failed to load user", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Store("failed to generate token", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
