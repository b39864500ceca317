package main

import (
	"log"
	"net/http"
	"os"

	"politiquensemble-live/config"
	"politiquensemble-live/handlers"
	"politiquensemble-live/middleware"
	"politiquensemble-live/models"
	"politiquensemble-live/repositories"
	"politiquensemble-live/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	coverageRepo := repositories.NewCoverageRepository(db)
	updateRepo := repositories.NewUpdateRepository(db)
	editorRepo := repositories.NewEditorRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	coverageService := services.NewCoverageService(coverageRepo, editorRepo, userRepo)
	updateService := services.NewUpdateService(updateRepo, coverageRepo)
	questionService := services.NewQuestionService(questionRepo, coverageRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	coverageHandler := handlers.NewCoverageHandler(coverageService)
	updateHandler := handlers.NewUpdateHandler(updateService)
	questionHandler := handlers.NewQuestionHandler(questionService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public live-coverage routes. The wildcard segment is the slug
		// for metadata and the numeric id for sub-resources; the router
		// allows only one name per position.
		coverages := api.Group("/live-coverages")
		{
			coverages.GET("", coverageHandler.GetLiveCoverages)
			coverages.GET("/:slug", coverageHandler.GetCoverageBySlug)
			coverages.GET("/:slug/updates", updateHandler.GetUpdates)
			coverages.GET("/:slug/editors", coverageHandler.GetEditors)
			coverages.POST("/:slug/questions", questionHandler.SubmitQuestion)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(models.RoleAdmin), string(models.RoleEditor)))
		{
			adminCoverages := admin.Group("/live-coverages")
			{
				adminCoverages.GET("", coverageHandler.GetAllCoverages)
				adminCoverages.POST("", coverageHandler.CreateCoverage)
				adminCoverages.PUT("/:id", coverageHandler.UpdateCoverage)
				adminCoverages.DELETE("/:id", coverageHandler.DeleteCoverage)
				adminCoverages.POST("/:id/editors", coverageHandler.AssignEditor)
				adminCoverages.DELETE("/:id/editors/:userId", coverageHandler.RemoveEditor)
				adminCoverages.POST("/:id/updates", updateHandler.CreateUpdate)
				adminCoverages.DELETE("/updates/:updateId", updateHandler.DeleteUpdate)
				adminCoverages.GET("/:id/questions", questionHandler.GetQuestions)
				adminCoverages.PUT("/questions/:id/status", questionHandler.UpdateQuestionStatus)
				adminCoverages.POST("/questions/:id/answer", questionHandler.AnswerQuestion)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", zap.String("port", port))
	log.Fatal(http.ListenAndServe(":"+port, router))
}
