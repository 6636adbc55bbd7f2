package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ayushlabs/ayush-backend/internal/handlers"
	"github.com/ayushlabs/ayush-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	PrakritiHandler *handlers.PrakritiHandler
	ProfileHandler  *handlers.ProfileHandler
	TaskHandler     *handlers.TaskHandler
	ChatHandler     *handlers.ChatHandler
	DietHandler     *handlers.DietHandler
	RecipeHandler   *handlers.RecipeHandler
	MealHandler     *handlers.MealHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	// The dialogue works before an account exists.
	router.POST("/api/chat/query", cfg.ChatHandler.Query)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Constitution
	protected.POST("/prakriti/classify", cfg.PrakritiHandler.Classify)
	// Profile
	protected.GET("/profile", cfg.ProfileHandler.GetProfile)
	// Tasks
	protected.POST("/tasks/toggle", cfg.TaskHandler.Toggle)
	protected.POST("/tasks/reset", cfg.TaskHandler.ResetWeek)
	protected.GET("/tasks/summary", cfg.TaskHandler.WeeklySummary)
	// Diet
	protected.GET("/diet/plan", cfg.DietHandler.GetDietPlan)
	// Recipes
	protected.POST("/recipes/generate", cfg.RecipeHandler.Generate)
	protected.GET("/recipes/history", cfg.RecipeHandler.History)
	// Meal scan
	protected.POST("/meal/scan", cfg.MealHandler.Scan)

	return router
}
