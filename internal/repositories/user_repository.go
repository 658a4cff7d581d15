package repositories

import (
	"context"

	"talenthub/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Update writes name and the profile/company sub-records.
	Update(ctx context.Context, user *models.User) error
}
