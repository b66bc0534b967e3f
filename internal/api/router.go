package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodieshare/recipe-service/internal/api/handler"
	"github.com/foodieshare/recipe-service/internal/api/middleware"
	"github.com/foodieshare/recipe-service/internal/core/service"
	"github.com/foodieshare/recipe-service/internal/infrastructure/config"
	mongostore "github.com/foodieshare/recipe-service/internal/infrastructure/db/mongo"
	redisstore "github.com/foodieshare/recipe-service/internal/infrastructure/db/redis"
	"github.com/foodieshare/recipe-service/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("foodieshare"))

	// --- Dependencies ---
	recipeRepo := mongostore.NewRecipeRepository(db)
	userRepo := mongostore.NewUserRepository(db)
	respCache := redisstore.NewResponseCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	recipeService := service.NewRecipeService(recipeRepo, userRepo, log)
	userService := service.NewUserService(userRepo, recipeRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	authOptional := middleware.OptionalAuth(cfg.JWTSecret)
	cacheList := middleware.Cache(respCache, cfg.Cache.TTL)
	cachePopular := middleware.Cache(respCache, redisstore.TTLShort)
	invalidateRecipes := middleware.Invalidate(respCache, "recipes")

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// --- Recipe routes ---
	// /popular before /:id so it is not swallowed by the param route.
	api.GET("/recipes/popular", recipeHandler.Popular, cachePopular)
	api.GET("/recipes", recipeHandler.List, cacheList)
	api.GET("/recipes/:id", recipeHandler.Get, authOptional)
	api.POST("/recipes", recipeHandler.Create, authRequired, invalidateRecipes)
	api.PUT("/recipes/:id", recipeHandler.Update, authRequired, invalidateRecipes)
	api.DELETE("/recipes/:id", recipeHandler.Delete, authRequired, invalidateRecipes)
	api.POST("/recipes/:id/rate", recipeHandler.Rate, authRequired, invalidateRecipes)
	api.POST("/recipes/:id/comments", recipeHandler.Comment, authRequired, invalidateRecipes)
	api.POST("/recipes/:id/favorite", recipeHandler.Favorite, authRequired)

	// --- User routes ---
	api.GET("/users/:id", userHandler.Get, authRequired)
	api.GET("/users/:id/profile", userHandler.GetProfile, authRequired)
	api.PUT("/users/:id", userHandler.Update, authRequired)
	api.DELETE("/users/:id", userHandler.Delete, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}
