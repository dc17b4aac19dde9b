package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tcgladder/internal/config"
	"tcgladder/internal/handlers"
	"tcgladder/internal/ladder"
	"tcgladder/internal/metrics"
	"tcgladder/internal/models"
	"tcgladder/internal/repositories"
	"tcgladder/internal/routers"
	"tcgladder/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.Match{},
		&models.MatchReport{},
		&models.Season{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func registerRoutes(router *chi.Mux, db *gorm.DB, cache *services.LeaderboardCache, logger *zap.Logger, cfg *config.Config) {
	users := &repositories.UserRepository{DB: db}
	matches := &repositories.MatchRepository{DB: db}

	challengeService := ladder.NewChallengeService(db, logger)
	matchService := ladder.NewMatchService(db, logger, cache)
	seasonService := ladder.NewSeasonService(db, logger, cache)
	historyService := ladder.NewHistoryService(db)

	routers.AuthRoutes(router, handlers.NewAuthHandler(users, cfg.JWTSecret), cfg.JWTSecret)
	routers.ChallengeRoutes(router, handlers.NewChallengeHandler(challengeService), cfg.JWTSecret)
	routers.MatchRoutes(router, handlers.NewMatchHandler(matchService), cfg.JWTSecret)
	routers.SeasonRoutes(router, handlers.NewSeasonHandler(seasonService), cfg.JWTSecret)
	routers.ProfileRoutes(router, handlers.NewProfileHandler(users, matches, historyService))
	routers.LeaderboardRoutes(router, handlers.NewLeaderboardHandler(users, cache, logger))
}

func main() {
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := initDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	cache := services.NewLeaderboardCache(cfg.RedisAddr, logger)
	defer cache.Close()

	sweeper := ladder.NewExpirySweeper(db, logger, cfg.ChallengeTTL)
	if err := sweeper.Start(cfg.ExpirySchedule); err != nil {
		logger.Fatal("Failed to start challenge expiry sweeper", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("ok")) })
	router.Handle("/metrics", metrics.Handler())
	registerRoutes(router, db, cache, logger, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Ladder service starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Ladder service shutting down...")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Ladder service exited")
}
