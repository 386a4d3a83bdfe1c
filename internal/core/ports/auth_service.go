package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

type AuthService interface {
	// Register creates a user with a hashed password and returns a freshly
	// issued session token alongside the stored user.
	Register(ctx context.Context, email, password, role string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
