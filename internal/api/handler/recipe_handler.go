package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/foodieshare/recipe-service/internal/api/metrics"
	"github.com/foodieshare/recipe-service/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// List handles GET /api/recipes.
//
// @Summary      List recipes with filters and cursor pagination
// @Tags         recipes
// @Produce      json
// @Param        search              query     string  false  "Substring match on title or description"
// @Param        category            query     string  false  "Exact category"
// @Param        difficulty          query     string  false  "easy, medium or hard"
// @Param        minPreparationTime  query     int     false  "Minimum preparation time (minutes)"
// @Param        maxPreparationTime  query     int     false  "Maximum preparation time (minutes)"
// @Param        minIngredients      query     int     false  "Minimum ingredient count"
// @Param        maxIngredients      query     int     false  "Maximum ingredient count"
// @Param        limit               query     int     false  "Page size (default 12)"
// @Param        cursor              query     string  false  "Continuation token from a previous page"
// @Success      200                 {object}  listRecipesResponse
// @Failure      400                 {object}  errorResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	input, err := parseListInput(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Create handles POST /api/recipes.
//
// @Summary      Create a new recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recipeRequest  true  "Recipe details"
// @Success      201   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.service.Create(c.Request().Context(), toCreateInput(req, userID))
	if err != nil {
		return err
	}

	metrics.RecipesCreatedTotal.WithLabelValues(recipe.Category).Inc()
	return c.JSON(http.StatusCreated, toRecipeResponse(recipe))
}

// Get handles GET /api/recipes/:id. Anonymous callers always see
// is_favorited = false.
//
// @Summary      Get a recipe by id
// @Tags         recipes
// @Produce      json
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  recipeDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	recipe, favorited, err := h.service.Get(c.Request().Context(), c.Param("id"), ctxOptionalUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipeDetailResponse{
		recipeResponse: toRecipeResponse(recipe),
		IsFavorited:    favorited,
	})
}

// Update handles PUT /api/recipes/:id. Only the author or an admin may update.
//
// @Summary      Update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Recipe id"
// @Param        body  body      recipeRequest  true  "Recipe details"
// @Success      200   {object}  recipeResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caller := ports.ModifyRecipeInput{RecipeID: c.Param("id"), UserID: userID, Role: role}
	recipe, err := h.service.Update(c.Request().Context(), caller, toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Delete handles DELETE /api/recipes/:id. Only the author or an admin may delete.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	caller := ports.ModifyRecipeInput{RecipeID: c.Param("id"), UserID: userID, Role: role}
	if err := h.service.Delete(c.Request().Context(), caller); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "recipe deleted"})
}

// Rate handles POST /api/recipes/:id/rate. One rating per user per recipe;
// a repeat submission overwrites the previous score.
//
// @Summary      Rate a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Recipe id"
// @Param        body  body      rateRequest  true  "Score in [1,5]"
// @Success      200   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id}/rate [post]
func (h *RecipeHandler) Rate(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	recipe, err := h.service.Rate(c.Request().Context(), c.Param("id"), userID, req.Score)
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(req.Score)).Inc()
	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Comment handles POST /api/recipes/:id/comments.
//
// @Summary      Comment on a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Recipe id"
// @Param        body  body      commentRequest  true  "Comment content"
// @Success      200   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id}/comments [post]
func (h *RecipeHandler) Comment(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	recipe, err := h.service.Comment(c.Request().Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// Favorite handles POST /api/recipes/:id/favorite. Each call flips the
// membership state; the response reflects the state after the call.
//
// @Summary      Toggle a recipe in the caller's favorites
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  favoriteResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id}/favorite [post]
func (h *RecipeHandler) Favorite(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.ToggleFavorite(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	state := "removed"
	if result.IsFavorited {
		state = "added"
	}
	metrics.FavoritesToggledTotal.WithLabelValues(state).Inc()

	return c.JSON(http.StatusOK, favoriteResponse{
		IsFavorited: result.IsFavorited,
		Recipe:      toRecipeResponse(result.Recipe),
	})
}

// Popular handles GET /api/recipes/popular.
//
// @Summary      Get the top-rated recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {array}  popularRecipeResponse
// @Router       /api/recipes/popular [get]
func (h *RecipeHandler) Popular(c echo.Context) error {
	recipes, err := h.service.Popular(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPopularResponse(recipes))
}
