package ports

import (
	"context"

	"github.com/foodieshare/recipe-service/internal/core/domain"
)

// DefaultPageLimit is the page size applied when the caller does not supply one.
const DefaultPageLimit = 12

// ListRecipesInput carries all parameters for the list endpoint. Limit == 0
// means "use the default"; a negative Limit is rejected by the service.
type ListRecipesInput struct {
	Filter ListRecipesFilter
	Limit  int
	// LimitSet distinguishes an explicit Limit from an absent one, so that an
	// explicit zero is rejected instead of silently defaulted.
	LimitSet bool
}

// ListRecipesResult is one page of recipes plus the continuation token.
// NextCursor is empty when no further pages exist.
type ListRecipesResult struct {
	Recipes    []*domain.Recipe
	NextCursor string
}

// CreateRecipeInput carries the data needed to create a recipe.
type CreateRecipeInput struct {
	Title           string
	Description     string
	Ingredients     []string
	Steps           []string
	Category        string
	Difficulty      string
	PreparationTime int
	ImageURL        string
	AuthorID        string
}

// ModifyRecipeInput identifies the caller for ownership checks on update/delete.
type ModifyRecipeInput struct {
	RecipeID string
	UserID   string
	Role     string
}

// FavoriteResult reflects the favorite state after a toggle.
type FavoriteResult struct {
	IsFavorited bool
	Recipe      *domain.Recipe
}

// RecipeService defines use-case operations for recipes.
type RecipeService interface {
	List(ctx context.Context, input ListRecipesInput) (*ListRecipesResult, error)
	Create(ctx context.Context, input CreateRecipeInput) (*domain.Recipe, error)
	// Get returns the recipe and whether it is in userID's favorites.
	// userID may be empty (unauthenticated callers see isFavorited = false).
	Get(ctx context.Context, recipeID, userID string) (*domain.Recipe, bool, error)
	Update(ctx context.Context, caller ModifyRecipeInput, upd UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, caller ModifyRecipeInput) error
	Rate(ctx context.Context, recipeID, userID string, score int) (*domain.Recipe, error)
	Comment(ctx context.Context, recipeID, userID, content string) (*domain.Recipe, error)
	ToggleFavorite(ctx context.Context, userID, recipeID string) (*FavoriteResult, error)
	Popular(ctx context.Context) ([]*PopularRecipe, error)
}
