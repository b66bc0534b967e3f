package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodieshare/recipe-service/internal/core/domain"
	"github.com/foodieshare/recipe-service/internal/core/ports"
)

// UserHandler handles HTTP requests for account and profile operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetProfile handles GET /api/users/:id/profile: the user plus their
// authored and favorited recipes.
//
// @Summary      Get a user profile with recipes populated
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id}/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	detail, err := h.service.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := profileResponse{
		User:      toUserResponse(detail.User),
		Recipes:   make([]recipeResponse, len(detail.Recipes)),
		Favorites: make([]recipeResponse, len(detail.Favorites)),
	}
	for i, r := range detail.Recipes {
		resp.Recipes[i] = toRecipeResponse(r)
	}
	for i, r := range detail.Favorites {
		resp.Favorites[i] = toRecipeResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/users/:id. Callers may only update their own
// profile; admins may update anyone's.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if !domain.CanModify(userID, role, c.Param("id")) {
		return domain.ErrForbidden
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), c.Param("id"), req.Username, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /api/users/:id. Removes the account and all recipes
// it authored.
//
// @Summary      Delete a user account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, role, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "account deleted"})
}
