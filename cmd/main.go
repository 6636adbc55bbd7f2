package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ayushlabs/ayush-backend/internal/assessment"
	"github.com/ayushlabs/ayush-backend/internal/clients/gcp"
	"github.com/ayushlabs/ayush-backend/internal/clients/gemini"
	"github.com/ayushlabs/ayush-backend/internal/clients/redis"
	"github.com/ayushlabs/ayush-backend/internal/db"
	"github.com/ayushlabs/ayush-backend/internal/dinacharya"
	"github.com/ayushlabs/ayush-backend/internal/handlers"
	"github.com/ayushlabs/ayush-backend/internal/knowledge"
	"github.com/ayushlabs/ayush-backend/internal/logger"
	"github.com/ayushlabs/ayush-backend/internal/middleware"
	"github.com/ayushlabs/ayush-backend/internal/repos"
	"github.com/ayushlabs/ayush-backend/internal/server"
	"github.com/ayushlabs/ayush-backend/internal/services"
	"github.com/ayushlabs/ayush-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	qnaPath := utils.GetEnv("QNA_PATH", "data/ayush_qna.json", log)
	foodKBPath := utils.GetEnv("FOOD_KB_PATH", "data/ayu_knowledge.json", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Knowledge base
	log.Info("Loading knowledge base from main...")
	base, err := knowledge.Load(log, qnaPath, foodKBPath)
	if err != nil {
		log.Error("Could not load knowledge base", "error", err)
		os.Exit(1)
	}
	catalog := dinacharya.NewCatalog()
	machine := assessment.NewMachine(base.Graph)

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	recipeRecordRepo := repos.NewRecipeRecordRepo(thePG, log)

	// Clients
	log.Info("Setting up clients from main...")
	var profileCache services.ProfileCache = services.NoopProfileCache{}
	if redisCache, err := redis.NewProfileCache(log); err != nil {
		log.Warn("Could not init redis profile cache, continuing without", "error", err)
	} else {
		profileCache = redisCache
	}
	var geminiClient gemini.Client
	if gc, err := gemini.NewClient(log); err != nil {
		log.Warn("Could not init gemini client, recipe generation disabled", "error", err)
	} else {
		geminiClient = gc
	}
	var visionClient gcp.Vision
	if vc, err := gcp.NewVision(log); err != nil {
		log.Warn("Could not init vision client, meal scanning disabled", "error", err)
	} else {
		visionClient = vc
	}

	// Services
	log.Info("Setting up Services from main...")
	locks := services.NewPhoneLocks()
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	taskService := services.NewTaskService(thePG, log, userRepo, catalog, locks, profileCache)
	prakritiService := services.NewPrakritiService(thePG, log, userRepo, catalog, locks, profileCache)
	profileService := services.NewProfileService(thePG, log, userRepo, taskService, profileCache)
	assessmentService := services.NewAssessmentService(thePG, log, machine, userRepo, locks)
	dietService := services.NewDietService(thePG, log, base, userRepo)
	recipeService := services.NewRecipeService(thePG, log, geminiClient, userRepo, recipeRecordRepo)
	mealScanService := services.NewMealScanService(thePG, log, visionClient, base)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	prakritiHandler := handlers.NewPrakritiHandler(prakritiService)
	profileHandler := handlers.NewProfileHandler(profileService)
	taskHandler := handlers.NewTaskHandler(taskService)
	chatHandler := handlers.NewChatHandler(assessmentService)
	dietHandler := handlers.NewDietHandler(dietService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	mealHandler := handlers.NewMealHandler(mealScanService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		PrakritiHandler: prakritiHandler,
		ProfileHandler:  profileHandler,
		TaskHandler:     taskHandler,
		ChatHandler:     chatHandler,
		DietHandler:     dietHandler,
		RecipeHandler:   recipeHandler,
		MealHandler:     mealHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
