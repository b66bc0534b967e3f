package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodieshare/recipe-service/internal/core/domain"
	"github.com/foodieshare/recipe-service/internal/core/ports"
)

const collectionRecipes = "recipes"

type RecipeRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{
		col:   db.Collection(collectionRecipes),
		users: db.Collection(collectionUsers),
	}
}

type ratingDoc struct {
	User  string    `bson:"user"`
	Score int       `bson:"score"`
	Date  time.Time `bson:"date"`
}

type commentDoc struct {
	User      string    `bson:"user"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

type recipeDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Ingredients     []string           `bson:"ingredients"`
	Steps           []string           `bson:"steps"`
	Category        string             `bson:"category"`
	Difficulty      string             `bson:"difficulty"`
	PreparationTime int                `bson:"preparation_time"`
	Author          primitive.ObjectID `bson:"author"`
	Ratings         []ratingDoc        `bson:"ratings"`
	Comments        []commentDoc       `bson:"comments"`
	ImageURL        string             `bson:"image_url,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

// buildListFilter compiles the optional listing criteria into a single
// conjunctive bson predicate. Absent criteria contribute nothing; an absent
// optional is never translated into an equals-null condition. A cursor that
// is not a valid object id is treated as absent rather than failing the
// query, matching the lenient handling of the numeric filters.
func buildListFilter(f ports.ListRecipesFilter) bson.M {
	query := bson.M{}

	if search := strings.TrimSpace(f.Search); search != "" {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Difficulty != "" {
		query["difficulty"] = f.Difficulty
	}

	if f.MinPreparationTime != nil || f.MaxPreparationTime != nil {
		prep := bson.M{}
		if f.MinPreparationTime != nil {
			prep["$gte"] = *f.MinPreparationTime
		}
		if f.MaxPreparationTime != nil {
			prep["$lte"] = *f.MaxPreparationTime
		}
		query["preparation_time"] = prep
	}

	if f.MinIngredients != nil || f.MaxIngredients != nil {
		var conds bson.A
		if f.MinIngredients != nil {
			conds = append(conds, bson.M{"$gte": bson.A{bson.M{"$size": "$ingredients"}, *f.MinIngredients}})
		}
		if f.MaxIngredients != nil {
			conds = append(conds, bson.M{"$lte": bson.A{bson.M{"$size": "$ingredients"}, *f.MaxIngredients}})
		}
		query["$expr"] = bson.M{"$and": conds}
	}

	if f.Cursor != "" {
		if oid, err := primitive.ObjectIDFromHex(f.Cursor); err == nil {
			query["_id"] = bson.M{"$gt": oid}
		}
	}

	return query
}

// List fetches up to fetchLimit recipes matching filter in ascending _id
// order. The repository never trims to the page size; the service passes
// limit+1 and drops the extra record itself.
func (r *RecipeRepository) List(ctx context.Context, filter ports.ListRecipesFilter, fetchLimit int) ([]*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(fetchLimit))

	cur, err := r.col.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []recipeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	recipes := make([]*domain.Recipe, len(docs))
	for i := range docs {
		recipes[i] = docs[i].toDomain()
	}
	return recipes, nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	author, err := primitive.ObjectIDFromHex(recipe.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", err)
	}

	doc := recipeDoc{
		Title:           recipe.Title,
		Description:     recipe.Description,
		Ingredients:     recipe.Ingredients,
		Steps:           recipe.Steps,
		Category:        recipe.Category,
		Difficulty:      string(recipe.Difficulty),
		PreparationTime: recipe.PreparationTime,
		Author:          author,
		Ratings:         []ratingDoc{},
		Comments:        []commentDoc{},
		ImageURL:        recipe.ImageURL,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	created := doc.toDomain()
	created.AuthorName = recipe.AuthorName
	return created, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	var doc recipeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	recipe := doc.toDomain()
	r.fillAuthorName(ctx, recipe, doc.Author)
	return recipe, nil
}

// fillAuthorName resolves the author's username. A failed lookup leaves the
// name blank instead of failing the read.
func (r *RecipeRepository) fillAuthorName(ctx context.Context, recipe *domain.Recipe, author primitive.ObjectID) {
	var u struct {
		Username string `bson:"username"`
	}
	if err := r.users.FindOne(ctx, bson.M{"_id": author}).Decode(&u); err == nil {
		recipe.AuthorName = u.Username
	}
}

func (r *RecipeRepository) Update(ctx context.Context, id string, upd ports.UpdateRecipeInput) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":            upd.Title,
		"description":      upd.Description,
		"ingredients":      upd.Ingredients,
		"steps":            upd.Steps,
		"category":         upd.Category,
		"difficulty":       upd.Difficulty,
		"preparation_time": upd.PreparationTime,
		"image_url":        upd.ImageURL,
		"updated_at":       time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc recipeDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if _, err := r.col.DeleteMany(ctx, bson.M{"author": oid}); err != nil {
		return fmt.Errorf("delete recipes by author: %w", err)
	}
	return nil
}

// UpsertRating applies a rating without a read-modify-write round trip. Each
// case is one conditional update carrying its own membership predicate, so two
// concurrent ratings from different users cannot overwrite each other:
//
//	existing user  → match {_id, "ratings.user": uid}, $set the positional element
//	absent user    → match {_id, "ratings.user": {$ne: uid}}, $push a new element
//
// If the push matches nothing, either the recipe is gone or the user's rating
// appeared concurrently; one retry of the $set disambiguates.
func (r *RecipeRepository) UpsertRating(ctx context.Context, recipeID string, rating domain.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	set := bson.M{"$set": bson.M{
		"ratings.$.score": rating.Score,
		"ratings.$.date":  rating.Date,
	}}
	push := bson.M{"$push": bson.M{"ratings": ratingDoc{
		User:  rating.UserID,
		Score: rating.Score,
		Date:  rating.Date,
	}}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "ratings.user": rating.UserID}, set)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.col.UpdateOne(ctx, bson.M{"_id": oid, "ratings.user": bson.M{"$ne": rating.UserID}}, push)
	if err != nil {
		return fmt.Errorf("push rating: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.col.UpdateOne(ctx, bson.M{"_id": oid, "ratings.user": rating.UserID}, set)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) AppendComment(ctx context.Context, recipeID string, comment domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	push := bson.M{"$push": bson.M{"comments": commentDoc{
		User:      comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, push)
	if err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// Popular ranks recipes by average rating then rating count, computed by the
// store from the full ratings list, and joins the author's username.
func (r *RecipeRepository) Popular(ctx context.Context, limit int) ([]*ports.PopularRecipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"average_rating": bson.M{"$avg": "$ratings.score"},
			"rating_count":   bson.M{"$size": "$ratings"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "average_rating", Value: -1},
			{Key: "rating_count", Value: -1},
		}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "author",
			"foreignField": "_id",
			"as":           "author_doc",
		}}},
		{{Key: "$unwind", Value: "$author_doc"}},
		{{Key: "$project", Value: bson.M{
			"title":            1,
			"description":      1,
			"image_url":        1,
			"difficulty":       1,
			"preparation_time": 1,
			"average_rating":   1,
			"rating_count":     1,
			"author_name":      "$author_doc.username",
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("popular recipes: %w", err)
	}
	defer cur.Close(ctx)

	var raw []struct {
		ID              primitive.ObjectID `bson:"_id"`
		Title           string             `bson:"title"`
		Description     string             `bson:"description"`
		ImageURL        string             `bson:"image_url"`
		Difficulty      string             `bson:"difficulty"`
		PreparationTime int                `bson:"preparation_time"`
		AverageRating   float64            `bson:"average_rating"`
		RatingCount     int                `bson:"rating_count"`
		AuthorName      string             `bson:"author_name"`
	}
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode popular recipes: %w", err)
	}

	out := make([]*ports.PopularRecipe, len(raw))
	for i, doc := range raw {
		out[i] = &ports.PopularRecipe{
			ID:              doc.ID.Hex(),
			Title:           doc.Title,
			Description:     doc.Description,
			ImageURL:        doc.ImageURL,
			Difficulty:      doc.Difficulty,
			PreparationTime: doc.PreparationTime,
			AverageRating:   doc.AverageRating,
			RatingCount:     doc.RatingCount,
			AuthorName:      doc.AuthorName,
		}
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing the filter compiler's equality
// predicates and the author cascade.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "difficulty", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d *recipeDoc) toDomain() *domain.Recipe {
	ratings := make([]domain.Rating, len(d.Ratings))
	for i, rd := range d.Ratings {
		ratings[i] = domain.Rating{UserID: rd.User, Score: rd.Score, Date: rd.Date}
	}
	comments := make([]domain.Comment, len(d.Comments))
	for i, cd := range d.Comments {
		comments[i] = domain.Comment{UserID: cd.User, Content: cd.Content, CreatedAt: cd.CreatedAt}
	}
	return &domain.Recipe{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		Ingredients:     d.Ingredients,
		Steps:           d.Steps,
		Category:        d.Category,
		Difficulty:      domain.Difficulty(d.Difficulty),
		PreparationTime: d.PreparationTime,
		AuthorID:        d.Author.Hex(),
		Ratings:         ratings,
		Comments:        comments,
		ImageURL:        d.ImageURL,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
