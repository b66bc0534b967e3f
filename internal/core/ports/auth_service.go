package ports

import (
	"context"

	"github.com/foodieshare/recipe-service/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	// Register creates an account and returns it together with a signed token.
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	// Login authenticates by email + password and returns a signed token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
