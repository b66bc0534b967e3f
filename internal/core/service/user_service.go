package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foodieshare/recipe-service/internal/core/domain"
	"github.com/foodieshare/recipe-service/internal/core/ports"
)

type UserService struct {
	users   ports.UserRepository
	recipes ports.RecipeRepository
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, recipes ports.RecipeRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, recipes: recipes, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// GetProfile returns the user together with the recipes they authored and
// favorited. Missing referenced recipes are skipped rather than failing the
// whole profile.
func (s *UserService) GetProfile(ctx context.Context, id string) (*ports.ProfileDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.ProfileDetail{
		User:      user,
		Recipes:   make([]*domain.Recipe, 0, len(user.Recipes)),
		Favorites: make([]*domain.Recipe, 0, len(user.Favorites)),
	}

	for _, recipeID := range user.Recipes {
		recipe, err := s.recipes.FindByID(ctx, recipeID)
		if err != nil {
			continue
		}
		detail.Recipes = append(detail.Recipes, recipe)
	}
	for _, recipeID := range user.Favorites {
		recipe, err := s.recipes.FindByID(ctx, recipeID)
		if err != nil {
			continue
		}
		detail.Favorites = append(detail.Favorites, recipe)
	}

	return detail, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id, username, email string) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, username, email)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("profile updated")
	return user, nil
}

// Delete removes the account and every recipe it authored. Only the account
// owner or an admin may delete.
func (s *UserService) Delete(ctx context.Context, callerID, callerRole, id string) error {
	if !domain.CanModify(callerID, callerRole, id) {
		return domain.ErrForbidden
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.recipes.DeleteByAuthor(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete authored recipes")
		return fmt.Errorf("delete user recipes: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("deleted_by", callerID).Msg("account deleted")
	return nil
}
