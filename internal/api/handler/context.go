package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: a non-empty user id proves the
// middleware ran and resolved the caller.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return userID, role, nil
}

// ctxOptionalUserID returns the caller's user id, or "" for anonymous
// requests that went through OptionalAuth.
func ctxOptionalUserID(c echo.Context) string {
	userID, _ := c.Get("user_id").(string)
	return userID
}
