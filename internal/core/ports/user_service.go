package ports

import (
	"context"

	"github.com/foodieshare/recipe-service/internal/core/domain"
)

// ProfileDetail is the profile view with authored and favorited recipes populated.
type ProfileDetail struct {
	User      *domain.User
	Recipes   []*domain.Recipe
	Favorites []*domain.Recipe
}

// UserService defines use-case operations on accounts and profiles.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	GetProfile(ctx context.Context, id string) (*ProfileDetail, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*domain.User, error)
	// Delete removes the account and all recipes it authored. Only the
	// account owner or an admin may delete.
	Delete(ctx context.Context, callerID, callerRole, id string) error
}
