package ports

import (
	"context"

	"github.com/foodieshare/recipe-service/internal/core/domain"
)

// ListRecipesFilter carries the optional listing criteria. A nil pointer or
// empty string means the criterion is absent and must add no constraint to
// the compiled query.
type ListRecipesFilter struct {
	Search             string
	Category           string
	Difficulty         string
	MinPreparationTime *int
	MaxPreparationTime *int
	MinIngredients     *int
	MaxIngredients     *int
	// Cursor restricts results to ids strictly greater than this value.
	Cursor string
}

// RecipeRepository defines persistence operations for recipes.
type RecipeRepository interface {
	Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, id string) (*domain.Recipe, error)
	// List returns up to fetchLimit recipes matching filter, sorted ascending
	// by id. Callers pass limit+1 and trim; the repository never trims.
	List(ctx context.Context, filter ListRecipesFilter, fetchLimit int) ([]*domain.Recipe, error)
	Update(ctx context.Context, id string, upd UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
	// UpsertRating applies the rating as a single atomic conditional update:
	// set the matching ratings array element in place, or push a new one when
	// the user has none. Returns domain.ErrRecipeNotFound if id is unknown.
	UpsertRating(ctx context.Context, recipeID string, rating domain.Rating) error
	AppendComment(ctx context.Context, recipeID string, comment domain.Comment) error
	// Popular returns the top-rated recipes with averageRating and
	// ratingCount computed by the store.
	Popular(ctx context.Context, limit int) ([]*PopularRecipe, error)
}

// UpdateRecipeInput holds the mutable recipe fields for an update.
type UpdateRecipeInput struct {
	Title           string
	Description     string
	Ingredients     []string
	Steps           []string
	Category        string
	Difficulty      string
	PreparationTime int
	ImageURL        string
}

// PopularRecipe is the projection returned by the popular-recipes pipeline.
type PopularRecipe struct {
	ID              string
	Title           string
	Description     string
	ImageURL        string
	Difficulty      string
	PreparationTime int
	AverageRating   float64
	RatingCount     int
	AuthorName      string
}
