package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodieshare/recipe-service/internal/core/domain"
	"github.com/foodieshare/recipe-service/internal/core/ports"
)

type RecipeService struct {
	recipes ports.RecipeRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewRecipeService(recipes ports.RecipeRepository, users ports.UserRepository, logger zerolog.Logger) *RecipeService {
	return &RecipeService{recipes: recipes, users: users, logger: logger}
}

const popularLimit = 6

// List executes one page of the cursor scan: fetch limit+1 matching recipes
// in ascending id order, then trim the extra record. NextCursor is the id of
// the last returned recipe when more results exist, empty otherwise. The
// extra-fetch replaces any total-count query; a page boundary may shift by
// records inserted or removed since the cursor was issued, which is an
// accepted weak-consistency trade-off.
func (s *RecipeService) List(ctx context.Context, input ports.ListRecipesInput) (*ports.ListRecipesResult, error) {
	limit := input.Limit
	if !input.LimitSet {
		limit = ports.DefaultPageLimit
	}
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}

	recipes, err := s.recipes.List(ctx, input.Filter, limit+1)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list recipes")
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	result := &ports.ListRecipesResult{Recipes: recipes}
	if len(recipes) > limit {
		result.Recipes = recipes[:limit]
		result.NextCursor = recipes[limit-1].ID
	}
	return result, nil
}

// Create persists a new recipe and appends its id to the author's recipe list.
func (s *RecipeService) Create(ctx context.Context, input ports.CreateRecipeInput) (*domain.Recipe, error) {
	now := time.Now().UTC()
	recipe := &domain.Recipe{
		Title:           input.Title,
		Description:     input.Description,
		Ingredients:     input.Ingredients,
		Steps:           input.Steps,
		Category:        input.Category,
		Difficulty:      domain.Difficulty(input.Difficulty),
		PreparationTime: input.PreparationTime,
		ImageURL:        input.ImageURL,
		AuthorID:        input.AuthorID,
		Ratings:         []domain.Rating{},
		Comments:        []domain.Comment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.recipes.Create(ctx, recipe)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create recipe")
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	if err := s.users.AppendRecipe(ctx, input.AuthorID, created.ID); err != nil {
		// The recipe exists either way; the author's recipe list is a
		// non-owning reference that is repaired on next write.
		s.logger.Warn().Err(err).Str("user_id", input.AuthorID).Str("recipe_id", created.ID).
			Msg("failed to append recipe to author")
	}

	s.logger.Info().Str("recipe_id", created.ID).Str("author_id", input.AuthorID).Msg("recipe created")
	return created, nil
}

// Get returns the recipe plus whether it is favorited by userID. An empty
// userID (unauthenticated caller) always yields isFavorited = false.
func (s *RecipeService) Get(ctx context.Context, recipeID, userID string) (*domain.Recipe, bool, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, false, err
	}

	favorited := false
	if userID != "" {
		user, err := s.users.FindByID(ctx, userID)
		if err == nil {
			favorited = user.HasFavorite(recipeID)
		}
	}
	return recipe, favorited, nil
}

// Update mutates a recipe after checking the caller owns it or is an admin.
func (s *RecipeService) Update(ctx context.Context, caller ports.ModifyRecipeInput, upd ports.UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, caller.RecipeID)
	if err != nil {
		return nil, err
	}
	if !domain.CanModify(caller.UserID, caller.Role, recipe.AuthorID) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.recipes.Update(ctx, caller.RecipeID, upd)
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", caller.RecipeID).Msg("failed to update recipe")
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return updated, nil
}

// Delete removes a recipe after the same ownership check as Update.
func (s *RecipeService) Delete(ctx context.Context, caller ports.ModifyRecipeInput) error {
	recipe, err := s.recipes.FindByID(ctx, caller.RecipeID)
	if err != nil {
		return err
	}
	if !domain.CanModify(caller.UserID, caller.Role, recipe.AuthorID) {
		return domain.ErrForbidden
	}

	if err := s.recipes.Delete(ctx, caller.RecipeID); err != nil {
		s.logger.Error().Err(err).Str("recipe_id", caller.RecipeID).Msg("failed to delete recipe")
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.logger.Info().Str("recipe_id", caller.RecipeID).Str("user_id", caller.UserID).Msg("recipe deleted")
	return nil
}

// Rate records userID's score for a recipe. The score is validated before
// any store call; persistence is a single atomic conditional update (set the
// existing array element, or push when absent), so concurrent ratings from
// different users cannot lose each other's writes. Returns the updated recipe.
func (s *RecipeService) Rate(ctx context.Context, recipeID, userID string, score int) (*domain.Recipe, error) {
	if score < 1 || score > 5 {
		return nil, domain.ErrInvalidScore
	}

	rating := domain.Rating{UserID: userID, Score: score, Date: time.Now().UTC()}
	if err := s.recipes.UpsertRating(ctx, recipeID, rating); err != nil {
		return nil, err
	}

	s.logger.Info().Str("recipe_id", recipeID).Str("user_id", userID).Int("score", score).Msg("rating recorded")
	return s.recipes.FindByID(ctx, recipeID)
}

// Comment appends a comment to the recipe. Content must be non-empty after
// trimming; comments are append-only.
func (s *RecipeService) Comment(ctx context.Context, recipeID, userID, content string) (*domain.Recipe, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyComment
	}

	comment := domain.Comment{UserID: userID, Content: content, CreatedAt: time.Now().UTC()}
	if err := s.recipes.AppendComment(ctx, recipeID, comment); err != nil {
		return nil, err
	}
	return s.recipes.FindByID(ctx, recipeID)
}

// ToggleFavorite flips recipeID's membership in userID's favorites set. The
// flip itself is delegated to the repository as an atomic conditional update.
// Two successive calls restore the original state.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID string) (*ports.FavoriteResult, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	favorited, err := s.users.ToggleFavorite(ctx, userID, recipeID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("recipe_id", recipeID).Msg("failed to toggle favorite")
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	return &ports.FavoriteResult{IsFavorited: favorited, Recipe: recipe}, nil
}

// Popular returns the top-rated recipes, ranked by the store's aggregation.
func (s *RecipeService) Popular(ctx context.Context) ([]*ports.PopularRecipe, error) {
	recipes, err := s.recipes.Popular(ctx, popularLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch popular recipes")
		return nil, fmt.Errorf("popular recipes: %w", err)
	}
	return recipes, nil
}
