package main

import (
	"log"
	"time"

	"github.com/delcom/fittrack/internal/config"
	"github.com/delcom/fittrack/internal/database"
	"github.com/delcom/fittrack/internal/handlers"
	"github.com/delcom/fittrack/internal/middleware"
	"github.com/delcom/fittrack/internal/repository"
	"github.com/delcom/fittrack/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/css", "./static/css")

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("fittrack_session", store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)

	// Initialize services
	fileStore := services.NewFileStorage(cfg.UploadDir)
	tokenTTL := time.Duration(cfg.JWTExpiryHours) * time.Hour
	authService := services.NewAuthService(userRepo, tokenRepo, fileStore, cfg.JWTSecret, tokenTTL)
	workoutService := services.NewWorkoutService(workoutRepo, fileStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, fileStore)
	workoutHandler := handlers.NewWorkoutHandler(workoutService, fileStore)
	fileHandler := handlers.NewFileHandler(fileStore)
	pageHandler := handlers.NewPageHandler(authService, workoutService, fileStore)

	// Resolve the caller on every request (session first, then bearer token)
	r.Use(middleware.ResolveUser(userRepo, tokenRepo, cfg.JWTSecret))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "FitTrack is running",
		})
	})

	// Stored uploads
	r.GET("/files/:filename", fileHandler.Serve)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// User routes (protected)
		users := api.Group("/users")
		{
			users.GET("/me", userHandler.GetCurrentUser)
			users.PUT("/me", userHandler.UpdateProfile)
			users.PUT("/me/password", userHandler.UpdatePassword)
			users.POST("/me/photo", userHandler.UpdatePhoto)
		}

		// Workout routes (protected)
		workouts := api.Group("/workouts")
		{
			workouts.GET("", workoutHandler.List)
			workouts.POST("", workoutHandler.Create)
			workouts.GET("/stats", workoutHandler.Stats)
			workouts.GET("/charts", workoutHandler.Charts)
			workouts.GET("/:id", workoutHandler.Get)
			workouts.PUT("/:id", workoutHandler.Update)
			workouts.DELETE("/:id", workoutHandler.Delete)
			workouts.POST("/:id/image", workoutHandler.UploadImage)
		}
	}

	// Web pages (session channel)
	r.GET("/auth/login", pageHandler.LoginForm)
	r.POST("/auth/login", pageHandler.Login)
	r.GET("/auth/register", pageHandler.RegisterForm)
	r.POST("/auth/register", pageHandler.Register)
	r.POST("/auth/logout", pageHandler.Logout)

	r.GET("/", pageHandler.Dashboard)
	r.GET("/workouts", pageHandler.Workouts)
	r.POST("/workouts", pageHandler.CreateWorkout)
	r.GET("/workouts/:id", pageHandler.WorkoutDetail)
	r.POST("/workouts/:id", pageHandler.UpdateWorkout)
	r.POST("/workouts/:id/delete", pageHandler.DeleteWorkout)
	r.POST("/workouts/:id/image", pageHandler.UploadWorkoutImage)
	r.GET("/profile", pageHandler.Profile)
	r.POST("/profile", pageHandler.UpdateProfile)
	r.POST("/profile/password", pageHandler.UpdatePassword)
	r.POST("/profile/photo", pageHandler.UpdatePhoto)

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
