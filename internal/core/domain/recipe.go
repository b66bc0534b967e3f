package domain

import (
	"errors"
	"time"
)

// Difficulty is the fixed 3-value difficulty scale of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ErrRecipeNotFound = errors.New("recipe not found")
var ErrInvalidScore = errors.New("score must be an integer between 1 and 5")
var ErrInvalidLimit = errors.New("limit must be a positive integer")
var ErrEmptyComment = errors.New("comment content is required")
var ErrForbidden = errors.New("access forbidden")

// IsValid reports whether d is one of the three known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Rating is one user's score for a recipe. A recipe holds at most one
// Rating per user; repeat submissions overwrite score and date in place.
type Rating struct {
	UserID string    `json:"user"`
	Score  int       `json:"score"`
	Date   time.Time `json:"date"`
}

// Comment is an append-only remark left by a user on a recipe.
type Comment struct {
	UserID    string    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Recipe is the core aggregate root.
type Recipe struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Ingredients     []string   `json:"ingredients"`
	Steps           []string   `json:"steps"`
	Category        string     `json:"category"`
	Difficulty      Difficulty `json:"difficulty"`
	PreparationTime int        `json:"preparation_time"`
	AuthorID        string     `json:"author"`
	AuthorName      string     `json:"author_name,omitempty"`
	Ratings         []Rating   `json:"ratings"`
	Comments        []Comment  `json:"comments"`
	ImageURL        string     `json:"image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// AverageRating reduces over the full ratings list on every call. No running
// mean is kept anywhere, so the value can never drift from the list itself.
func (r *Recipe) AverageRating() float64 {
	if len(r.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rating := range r.Ratings {
		sum += rating.Score
	}
	return float64(sum) / float64(len(r.Ratings))
}

// RatingCount returns the number of ratings on the recipe.
func (r *Recipe) RatingCount() int {
	return len(r.Ratings)
}

// RatingBy returns the rating left by userID, or nil if the user has not
// rated the recipe.
func (r *Recipe) RatingBy(userID string) *Rating {
	for i := range r.Ratings {
		if r.Ratings[i].UserID == userID {
			return &r.Ratings[i]
		}
	}
	return nil
}
