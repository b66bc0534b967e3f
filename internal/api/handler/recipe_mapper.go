package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foodieshare/recipe-service/internal/core/domain"
	"github.com/foodieshare/recipe-service/internal/core/ports"
)

// --- Query parameters → Service input ---

// parseListInput compiles the listing query parameters. The optional numeric
// filters are parsed leniently: a value that is not a valid non-negative
// integer is treated as absent, never an error. The explicit limit parameter
// is strict; the service rejects values it cannot page with.
func parseListInput(c echo.Context) (ports.ListRecipesInput, error) {
	input := ports.ListRecipesInput{
		Filter: ports.ListRecipesFilter{
			Search:             c.QueryParam("search"),
			Category:           c.QueryParam("category"),
			Difficulty:         c.QueryParam("difficulty"),
			MinPreparationTime: parseOptionalInt(c.QueryParam("minPreparationTime")),
			MaxPreparationTime: parseOptionalInt(c.QueryParam("maxPreparationTime")),
			MinIngredients:     parseOptionalInt(c.QueryParam("minIngredients")),
			MaxIngredients:     parseOptionalInt(c.QueryParam("maxIngredients")),
			Cursor:             c.QueryParam("cursor"),
		},
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return input, domain.ErrInvalidLimit
		}
		input.Limit = limit
		input.LimitSet = true
	}
	return input, nil
}

// parseOptionalInt returns nil for anything but a valid non-negative integer.
func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// --- Request → Service input ---

func toCreateInput(req recipeRequest, authorID string) ports.CreateRecipeInput {
	return ports.CreateRecipeInput{
		Title:           req.Title,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Steps:           req.Steps,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		PreparationTime: req.PreparationTime,
		ImageURL:        req.ImageURL,
		AuthorID:        authorID,
	}
}

func toUpdateInput(req recipeRequest) ports.UpdateRecipeInput {
	return ports.UpdateRecipeInput{
		Title:           req.Title,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Steps:           req.Steps,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		PreparationTime: req.PreparationTime,
		ImageURL:        req.ImageURL,
	}
}

// --- Domain → HTTP response ---

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	ratings := make([]ratingResponse, len(r.Ratings))
	for i, rating := range r.Ratings {
		ratings[i] = ratingResponse{UserID: rating.UserID, Score: rating.Score, Date: rating.Date.UTC()}
	}
	comments := make([]commentResponse, len(r.Comments))
	for i, comment := range r.Comments {
		comments[i] = commentResponse{UserID: comment.UserID, Content: comment.Content, CreatedAt: comment.CreatedAt.UTC()}
	}
	return recipeResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Ingredients:     r.Ingredients,
		Steps:           r.Steps,
		Category:        r.Category,
		Difficulty:      string(r.Difficulty),
		PreparationTime: r.PreparationTime,
		AuthorID:        r.AuthorID,
		AuthorName:      r.AuthorName,
		Ratings:         ratings,
		Comments:        comments,
		AverageRating:   r.AverageRating(),
		RatingCount:     r.RatingCount(),
		ImageURL:        r.ImageURL,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}

func toListResponse(res *ports.ListRecipesResult) listRecipesResponse {
	recipes := make([]recipeResponse, len(res.Recipes))
	for i, r := range res.Recipes {
		recipes[i] = toRecipeResponse(r)
	}
	out := listRecipesResponse{Recipes: recipes}
	if res.NextCursor != "" {
		cursor := res.NextCursor
		out.NextCursor = &cursor
	}
	return out
}

func toPopularResponse(items []*ports.PopularRecipe) []popularRecipeResponse {
	out := make([]popularRecipeResponse, len(items))
	for i, p := range items {
		out[i] = popularRecipeResponse{
			ID:              p.ID,
			Title:           p.Title,
			Description:     p.Description,
			ImageURL:        p.ImageURL,
			Difficulty:      p.Difficulty,
			PreparationTime: p.PreparationTime,
			AverageRating:   p.AverageRating,
			RatingCount:     p.RatingCount,
			AuthorName:      p.AuthorName,
		}
	}
	return out
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Recipes:   u.Recipes,
		Favorites: u.Favorites,
		CreatedAt: u.CreatedAt.UTC(),
	}
}
