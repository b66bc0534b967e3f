package ports

import (
	"context"

	"github.com/foodieshare/recipe-service/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	AppendRecipe(ctx context.Context, userID, recipeID string) error
	// ToggleFavorite issues a conditional $pull when recipeID is already a
	// favorite, else a conditional $addToSet. Each case is a single atomic
	// store operation. Returns the resulting membership state.
	ToggleFavorite(ctx context.Context, userID, recipeID string) (bool, error)
}
