package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models an account in the system. Recipes holds the ids of recipes the
// user authored; Favorites is a set of recipe ids (each appears at most once).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Recipes      []string  `json:"recipes"`
	Favorites    []string  `json:"favorites"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasFavorite reports whether recipeID is in the user's favorites set.
func (u *User) HasFavorite(recipeID string) bool {
	for _, id := range u.Favorites {
		if id == recipeID {
			return true
		}
	}
	return false
}

// CanModify reports whether the caller identified by userID/role may mutate
// a resource owned by ownerID. Admins may mutate anything.
func CanModify(userID, role, ownerID string) bool {
	return role == RoleAdmin || userID == ownerID
}
