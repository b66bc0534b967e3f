package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodieshare/recipe-service/internal/core/domain"
	"github.com/foodieshare/recipe-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubRecipeRepo struct {
	recipes map[string]*domain.Recipe
	nextID  int
	listErr error // if set, List returns this error

	upsertCalls int // number of UpsertRating invocations
	lastFetch   int // fetchLimit passed to the last List call
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{recipes: make(map[string]*domain.Recipe), nextID: 1}
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *domain.Recipe) (*domain.Recipe, error) {
	clone := *rec
	clone.ID = fmt.Sprintf("%03d", r.nextID)
	r.nextID++
	r.recipes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, id string) (*domain.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	clone := *rec
	return &clone, nil
}

// List applies the same conjunctive criteria the real Mongo query compiles,
// sorted ascending by id, returning at most fetchLimit records.
func (r *stubRecipeRepo) List(_ context.Context, f ports.ListRecipesFilter, fetchLimit int) ([]*domain.Recipe, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.lastFetch = fetchLimit

	var matched []*domain.Recipe
	for _, rec := range r.recipes {
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			titleMatch := strings.Contains(strings.ToLower(rec.Title), needle)
			descMatch := strings.Contains(strings.ToLower(rec.Description), needle)
			if !titleMatch && !descMatch {
				continue
			}
		}
		if f.Category != "" && rec.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && string(rec.Difficulty) != f.Difficulty {
			continue
		}
		if f.MinPreparationTime != nil && rec.PreparationTime < *f.MinPreparationTime {
			continue
		}
		if f.MaxPreparationTime != nil && rec.PreparationTime > *f.MaxPreparationTime {
			continue
		}
		if f.MinIngredients != nil && len(rec.Ingredients) < *f.MinIngredients {
			continue
		}
		if f.MaxIngredients != nil && len(rec.Ingredients) > *f.MaxIngredients {
			continue
		}
		if f.Cursor != "" && rec.ID <= f.Cursor {
			continue
		}
		clone := *rec
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if fetchLimit > 0 && len(matched) > fetchLimit {
		matched = matched[:fetchLimit]
	}
	return matched, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, id string, upd ports.UpdateRecipeInput) (*domain.Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	rec.Title = upd.Title
	rec.Description = upd.Description
	rec.Ingredients = upd.Ingredients
	rec.Steps = upd.Steps
	rec.Category = upd.Category
	rec.Difficulty = domain.Difficulty(upd.Difficulty)
	rec.PreparationTime = upd.PreparationTime
	rec.ImageURL = upd.ImageURL
	rec.UpdatedAt = time.Now().UTC()
	clone := *rec
	return &clone, nil
}

func (r *stubRecipeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.recipes[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *stubRecipeRepo) DeleteByAuthor(_ context.Context, authorID string) error {
	for id, rec := range r.recipes {
		if rec.AuthorID == authorID {
			delete(r.recipes, id)
		}
	}
	return nil
}

// UpsertRating mirrors the conditional set-or-push the Mongo repo issues.
func (r *stubRecipeRepo) UpsertRating(_ context.Context, recipeID string, rating domain.Rating) error {
	r.upsertCalls++
	rec, ok := r.recipes[recipeID]
	if !ok {
		return domain.ErrRecipeNotFound
	}
	for i := range rec.Ratings {
		if rec.Ratings[i].UserID == rating.UserID {
			rec.Ratings[i].Score = rating.Score
			rec.Ratings[i].Date = rating.Date
			return nil
		}
	}
	rec.Ratings = append(rec.Ratings, rating)
	return nil
}

func (r *stubRecipeRepo) AppendComment(_ context.Context, recipeID string, comment domain.Comment) error {
	rec, ok := r.recipes[recipeID]
	if !ok {
		return domain.ErrRecipeNotFound
	}
	rec.Comments = append(rec.Comments, comment)
	return nil
}

func (r *stubRecipeRepo) Popular(_ context.Context, limit int) ([]*ports.PopularRecipe, error) {
	var out []*ports.PopularRecipe
	for _, rec := range r.recipes {
		out = append(out, &ports.PopularRecipe{
			ID:            rec.ID,
			Title:         rec.Title,
			AverageRating: rec.AverageRating(),
			RatingCount:   rec.RatingCount(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubUserRepo struct {
	users       map[string]*domain.User
	toggleErr   error
	appendCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", len(r.users)+1)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, username, email string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) AppendRecipe(_ context.Context, userID, recipeID string) error {
	r.appendCalls++
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Recipes = append(u.Recipes, recipeID)
	return nil
}

func (r *stubUserRepo) ToggleFavorite(_ context.Context, userID, recipeID string) (bool, error) {
	if r.toggleErr != nil {
		return false, r.toggleErr
	}
	u, ok := r.users[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	for i, id := range u.Favorites {
		if id == recipeID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return false, nil
		}
	}
	u.Favorites = append(u.Favorites, recipeID)
	return true, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newTestRecipeService() (*RecipeService, *stubRecipeRepo, *stubUserRepo) {
	recipes := newStubRecipeRepo()
	users := newStubUserRepo()
	return NewRecipeService(recipes, users, discardLogger), recipes, users
}

func seedUser(users *stubUserRepo, id, role string) {
	users.users[id] = &domain.User{ID: id, Username: id, Role: role}
}

func seedRecipes(svc *RecipeService, n int) []*domain.Recipe {
	var out []*domain.Recipe
	for i := 1; i <= n; i++ {
		created, _ := svc.Create(context.Background(), ports.CreateRecipeInput{
			Title:           fmt.Sprintf("Recipe %d", i),
			Description:     "a dish",
			Ingredients:     []string{"salt", "flour"},
			Steps:           []string{"mix", "bake"},
			Category:        "dessert",
			Difficulty:      "easy",
			PreparationTime: 10 * i,
			AuthorID:        "author_1",
		})
		out = append(out, created)
	}
	return out
}

// ---------------------------------------------------------------------------
// List / pagination tests
// ---------------------------------------------------------------------------

func TestRecipeService_List_DefaultLimitIsTwelve(t *testing.T) {
	svc, repo, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	seedRecipes(svc, 15)

	result, err := svc.List(context.Background(), ports.ListRecipesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Recipes) != 12 {
		t.Fatalf("expected 12 recipes on default page, got %d", len(result.Recipes))
	}
	if repo.lastFetch != 13 {
		t.Errorf("expected repository fetch of limit+1 = 13, got %d", repo.lastFetch)
	}
	if result.NextCursor != result.Recipes[11].ID {
		t.Errorf("nextCursor must be the last returned id %q, got %q", result.Recipes[11].ID, result.NextCursor)
	}
}

func TestRecipeService_List_SecondPageEndsScan(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	seedRecipes(svc, 15)

	first, err := svc.List(context.Background(), ports.ListRecipesInput{})
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}

	second, err := svc.List(context.Background(), ports.ListRecipesInput{
		Filter: ports.ListRecipesFilter{Cursor: first.NextCursor},
	})
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}

	if len(second.Recipes) != 3 {
		t.Fatalf("expected 3 recipes on final page, got %d", len(second.Recipes))
	}
	if second.NextCursor != "" {
		t.Errorf("final page must have empty nextCursor, got %q", second.NextCursor)
	}
}

func TestRecipeService_List_FullScanIsCompleteAndNonOverlapping(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	seedRecipes(svc, 25)

	seen := make(map[string]bool)
	cursor := ""
	for pages := 0; ; pages++ {
		if pages > 10 {
			t.Fatal("cursor scan did not terminate")
		}
		result, err := svc.List(context.Background(), ports.ListRecipesInput{
			Filter: ports.ListRecipesFilter{Cursor: cursor},
			Limit:  4, LimitSet: true,
		})
		if err != nil {
			t.Fatalf("page failed: %v", err)
		}
		for _, rec := range result.Recipes {
			if seen[rec.ID] {
				t.Fatalf("recipe %s returned twice", rec.ID)
			}
			seen[rec.ID] = true
		}
		if result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}

	if len(seen) != 25 {
		t.Errorf("scan visited %d of 25 recipes", len(seen))
	}
}

func TestRecipeService_List_ExactPageBoundary(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	seedRecipes(svc, 12)

	result, err := svc.List(context.Background(), ports.ListRecipesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Recipes) != 12 {
		t.Fatalf("expected all 12 recipes, got %d", len(result.Recipes))
	}
	if result.NextCursor != "" {
		t.Errorf("no further results exist, nextCursor must be empty, got %q", result.NextCursor)
	}
}

func TestRecipeService_List_ExplicitNonPositiveLimitRejected(t *testing.T) {
	for _, limit := range []int{0, -1} {
		svc, _, _ := newTestRecipeService()
		_, err := svc.List(context.Background(), ports.ListRecipesInput{Limit: limit, LimitSet: true})
		if !errors.Is(err, domain.ErrInvalidLimit) {
			t.Errorf("limit %d: expected ErrInvalidLimit, got %v", limit, err)
		}
	}
}

func TestRecipeService_List_FiltersAreConjunctive(t *testing.T) {
	svc, repo, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	seedRecipes(svc, 5)
	// Make recipe 003 the only dessert that is hard.
	repo.recipes["003"].Difficulty = domain.DifficultyHard

	result, err := svc.List(context.Background(), ports.ListRecipesInput{
		Filter: ports.ListRecipesFilter{Category: "dessert", Difficulty: "hard"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recipes) != 1 || result.Recipes[0].ID != "003" {
		t.Fatalf("expected exactly recipe 003, got %d recipes", len(result.Recipes))
	}
}

func TestRecipeService_List_RepoError(t *testing.T) {
	svc, repo, _ := newTestRecipeService()
	repo.listErr = errors.New("db unavailable")

	_, err := svc.List(context.Background(), ports.ListRecipesInput{})
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestRecipeService_Create_AppendsToAuthorRecipeList(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)

	created, err := svc.Create(context.Background(), ports.CreateRecipeInput{
		Title: "Tacos", Category: "mexican", Difficulty: "easy", AuthorID: "author_1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	author := users.users["author_1"]
	if len(author.Recipes) != 1 || author.Recipes[0] != created.ID {
		t.Errorf("author's recipe list should contain %q, got %v", created.ID, author.Recipes)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps must be set on creation")
	}
}

func TestRecipeService_Create_SucceedsWhenAuthorAppendFails(t *testing.T) {
	svc, repo, _ := newTestRecipeService()
	// No user seeded, so AppendRecipe fails.

	created, err := svc.Create(context.Background(), ports.CreateRecipeInput{
		Title: "Tacos", AuthorID: "ghost",
	})
	if err != nil {
		t.Fatalf("create must not fail on author list append: %v", err)
	}
	if _, ok := repo.recipes[created.ID]; !ok {
		t.Error("recipe must still be persisted")
	}
}

// ---------------------------------------------------------------------------
// Get tests
// ---------------------------------------------------------------------------

func TestRecipeService_Get_ReportsFavoriteState(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	seedUser(users, "fan_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)
	users.users["fan_1"].Favorites = []string{recipes[0].ID}

	_, favorited, err := svc.Get(context.Background(), recipes[0].ID, "fan_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !favorited {
		t.Error("expected isFavorited=true for a favoriting user")
	}

	_, favorited, _ = svc.Get(context.Background(), recipes[0].ID, "")
	if favorited {
		t.Error("anonymous caller must see isFavorited=false")
	}
}

func TestRecipeService_Get_NotFound(t *testing.T) {
	svc, _, _ := newTestRecipeService()
	_, _, err := svc.Get(context.Background(), "missing", "")
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete ownership tests
// ---------------------------------------------------------------------------

func TestRecipeService_Update_ForbiddenForNonAuthor(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	_, err := svc.Update(context.Background(),
		ports.ModifyRecipeInput{RecipeID: recipes[0].ID, UserID: "intruder", Role: domain.RoleUser},
		ports.UpdateRecipeInput{Title: "Stolen"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRecipeService_Update_AdminMayEditAnyRecipe(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	updated, err := svc.Update(context.Background(),
		ports.ModifyRecipeInput{RecipeID: recipes[0].ID, UserID: "admin_1", Role: domain.RoleAdmin},
		ports.UpdateRecipeInput{Title: "Moderated", Difficulty: "easy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Moderated" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
}

func TestRecipeService_Delete_AuthorMayDelete(t *testing.T) {
	svc, repo, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	err := svc.Delete(context.Background(),
		ports.ModifyRecipeInput{RecipeID: recipes[0].ID, UserID: "author_1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.recipes[recipes[0].ID]; ok {
		t.Error("recipe must be removed")
	}
}

func TestRecipeService_Delete_ForbiddenForNonAuthor(t *testing.T) {
	svc, repo, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	err := svc.Delete(context.Background(),
		ports.ModifyRecipeInput{RecipeID: recipes[0].ID, UserID: "intruder", Role: domain.RoleUser})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := repo.recipes[recipes[0].ID]; !ok {
		t.Error("recipe must not be removed")
	}
}

func TestRecipeService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestRecipeService()
	err := svc.Delete(context.Background(),
		ports.ModifyRecipeInput{RecipeID: "missing", UserID: "u1", Role: domain.RoleUser})
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Rating tests
// ---------------------------------------------------------------------------

func TestRecipeService_Rate_SecondScoreOverwritesFirst(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	if _, err := svc.Rate(context.Background(), recipes[0].ID, "fan_1", 2); err != nil {
		t.Fatalf("first rating failed: %v", err)
	}
	updated, err := svc.Rate(context.Background(), recipes[0].ID, "fan_1", 5)
	if err != nil {
		t.Fatalf("second rating failed: %v", err)
	}

	if len(updated.Ratings) != 1 {
		t.Fatalf("expected exactly 1 rating after re-rating, got %d", len(updated.Ratings))
	}
	if updated.Ratings[0].Score != 5 {
		t.Errorf("expected score 5 after overwrite, got %d", updated.Ratings[0].Score)
	}
	if got := updated.AverageRating(); got != 5 {
		t.Errorf("expected average 5, got %v", got)
	}
}

func TestRecipeService_Rate_DistinctUsersAccumulate(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	_, _ = svc.Rate(context.Background(), recipes[0].ID, "fan_1", 2)
	updated, _ := svc.Rate(context.Background(), recipes[0].ID, "fan_2", 5)

	if len(updated.Ratings) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(updated.Ratings))
	}
	if got := updated.AverageRating(); got != 3.5 {
		t.Errorf("expected average 3.5, got %v", got)
	}
	if updated.RatingCount() != 2 {
		t.Errorf("expected count 2, got %d", updated.RatingCount())
	}
}

func TestRecipeService_Rate_OutOfRangeScoreNeverHitsStore(t *testing.T) {
	svc, repo, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	for _, score := range []int{0, 6, -1} {
		_, err := svc.Rate(context.Background(), recipes[0].ID, "fan_1", score)
		if !errors.Is(err, domain.ErrInvalidScore) {
			t.Errorf("score %d: expected ErrInvalidScore, got %v", score, err)
		}
	}
	if repo.upsertCalls != 0 {
		t.Errorf("invalid scores must not reach the repository, got %d calls", repo.upsertCalls)
	}
}

func TestRecipeService_Rate_UnknownRecipe(t *testing.T) {
	svc, _, _ := newTestRecipeService()
	_, err := svc.Rate(context.Background(), "missing", "fan_1", 3)
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Comment tests
// ---------------------------------------------------------------------------

func TestRecipeService_Comment_AppendsInOrder(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	_, _ = svc.Comment(context.Background(), recipes[0].ID, "fan_1", "first")
	updated, err := svc.Comment(context.Background(), recipes[0].ID, "fan_2", "second")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(updated.Comments))
	}
	if updated.Comments[0].Content != "first" || updated.Comments[1].Content != "second" {
		t.Error("comments must preserve insertion order")
	}
}

func TestRecipeService_Comment_BlankContentRejected(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Comment(context.Background(), recipes[0].ID, "fan_1", content)
		if !errors.Is(err, domain.ErrEmptyComment) {
			t.Errorf("content %q: expected ErrEmptyComment, got %v", content, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Favorite toggle tests
// ---------------------------------------------------------------------------

func TestRecipeService_ToggleFavorite_AlternatesState(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	seedUser(users, "fan_1", domain.RoleUser)
	recipes := seedRecipes(svc, 1)

	first, err := svc.ToggleFavorite(context.Background(), "fan_1", recipes[0].ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !first.IsFavorited {
		t.Error("first toggle must add the favorite")
	}

	second, err := svc.ToggleFavorite(context.Background(), "fan_1", recipes[0].ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if second.IsFavorited {
		t.Error("second toggle must remove the favorite")
	}

	// Back to the original state: the operation has period 2, not idempotent.
	if len(users.users["fan_1"].Favorites) != 0 {
		t.Errorf("favorites must be empty after an even number of toggles, got %v", users.users["fan_1"].Favorites)
	}

	third, _ := svc.ToggleFavorite(context.Background(), "fan_1", recipes[0].ID)
	if !third.IsFavorited {
		t.Error("third toggle must add the favorite again")
	}
}

func TestRecipeService_ToggleFavorite_UnknownRecipe(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "fan_1", domain.RoleUser)

	_, err := svc.ToggleFavorite(context.Background(), "fan_1", "missing")
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Popular tests
// ---------------------------------------------------------------------------

func TestRecipeService_Popular_RanksByAverage(t *testing.T) {
	svc, _, users := newTestRecipeService()
	seedUser(users, "author_1", domain.RoleUser)
	recipes := seedRecipes(svc, 3)

	_, _ = svc.Rate(context.Background(), recipes[0].ID, "fan_1", 3)
	_, _ = svc.Rate(context.Background(), recipes[1].ID, "fan_1", 5)
	_, _ = svc.Rate(context.Background(), recipes[2].ID, "fan_1", 1)

	popular, err := svc.Popular(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(popular) != 3 {
		t.Fatalf("expected 3 popular recipes, got %d", len(popular))
	}
	if popular[0].ID != recipes[1].ID {
		t.Errorf("highest-rated recipe must rank first, got %s", popular[0].ID)
	}
}
