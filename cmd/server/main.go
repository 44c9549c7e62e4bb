package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/iofh/quiz-app-heroku/internal/config"
	"github.com/iofh/quiz-app-heroku/internal/database"
	"github.com/iofh/quiz-app-heroku/internal/handlers"
	"github.com/iofh/quiz-app-heroku/internal/middleware"
	"github.com/iofh/quiz-app-heroku/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
)

// @title           Quiz Tournament API
// @version         1.0
// @description     API for quiz tournaments backed by an external trivia question provider
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		logger.Info("highscore cache enabled", "addr", cfg.RedisAddr)
	}

	provider := services.NewOpenTDBClient(cfg.TriviaAPIURL)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	tournamentService := services.NewTournamentService(db, provider)
	leaderboardService := services.NewLeaderboardService(db, cache, logger)
	quizService := services.NewQuizService(db, leaderboardService)

	if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	authHandler := handlers.NewAuthHandler(authService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	quizHandler := handlers.NewQuizHandler(quizService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		tournaments := api.Group("/tournaments")
		tournaments.Use(middleware.JWTAuth(authService))
		{
			tournaments.GET("", leaderboardHandler.ListAll)
			tournaments.GET("/ongoing", leaderboardHandler.ListOngoing)
			tournaments.GET("/upcoming", leaderboardHandler.ListUpcoming)
			tournaments.GET("/past", leaderboardHandler.ListPast)
			tournaments.GET("/:id/questions", leaderboardHandler.ListQuestions)
			tournaments.GET("/:id/highscore", leaderboardHandler.Highscore)
			tournaments.POST("/:id/start", quizHandler.StartTournament)
			tournaments.POST("/:id/results", quizHandler.SubmitResults)
		}

		admin := api.Group("/admin/tournaments")
		admin.Use(middleware.JWTAuth(authService), middleware.RequireAdmin())
		{
			admin.GET("", tournamentHandler.ListTournaments)
			admin.POST("", tournamentHandler.CreateTournament)
			admin.GET("/:id", tournamentHandler.GetTournament)
			admin.PUT("/:id", tournamentHandler.UpdateTournament)
			admin.DELETE("/:id", tournamentHandler.DeleteTournament)
		}
	}

	logger.Info("server starting", "port", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
