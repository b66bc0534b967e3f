package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type recipeRequest struct {
	Title           string   `json:"title"            validate:"required"`
	Description     string   `json:"description"      validate:"required"`
	Ingredients     []string `json:"ingredients"      validate:"required,min=1,dive,required"`
	Steps           []string `json:"steps"            validate:"required,min=1,dive,required"`
	Category        string   `json:"category"         validate:"required"`
	Difficulty      string   `json:"difficulty"       validate:"required,oneof=easy medium hard"`
	PreparationTime int      `json:"preparation_time" validate:"gte=0"`
	ImageURL        string   `json:"image_url"`
}

type rateRequest struct {
	Score int `json:"score"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type ratingResponse struct {
	UserID string    `json:"user"`
	Score  int       `json:"score"`
	Date   time.Time `json:"date"`
}

type commentResponse struct {
	UserID    string    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type recipeResponse struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Ingredients     []string          `json:"ingredients"`
	Steps           []string          `json:"steps"`
	Category        string            `json:"category"`
	Difficulty      string            `json:"difficulty"`
	PreparationTime int               `json:"preparation_time"`
	AuthorID        string            `json:"author"`
	AuthorName      string            `json:"author_name,omitempty"`
	Ratings         []ratingResponse  `json:"ratings"`
	Comments        []commentResponse `json:"comments"`
	AverageRating   float64           `json:"average_rating"`
	RatingCount     int               `json:"rating_count"`
	ImageURL        string            `json:"image_url,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type recipeDetailResponse struct {
	recipeResponse
	IsFavorited bool `json:"is_favorited"`
}

// listRecipesResponse is one page of recipes plus the continuation token.
// NextCursor is null when no further pages exist.
type listRecipesResponse struct {
	Recipes    []recipeResponse `json:"recipes"`
	NextCursor *string          `json:"nextCursor"`
}

type favoriteResponse struct {
	IsFavorited bool           `json:"isFavorited"`
	Recipe      recipeResponse `json:"recipe"`
}

type popularRecipeResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ImageURL        string  `json:"image_url,omitempty"`
	Difficulty      string  `json:"difficulty"`
	PreparationTime int     `json:"preparation_time"`
	AverageRating   float64 `json:"average_rating"`
	RatingCount     int     `json:"rating_count"`
	AuthorName      string  `json:"author_name"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Recipes   []string  `json:"recipes"`
	Favorites []string  `json:"favorites"`
	CreatedAt time.Time `json:"created_at"`
}

type profileResponse struct {
	User      userResponse     `json:"user"`
	Recipes   []recipeResponse `json:"recipes"`
	Favorites []recipeResponse `json:"favorites"`
}
