package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/medilink/records-api/internal/config"
	"github.com/medilink/records-api/internal/handler"
	authHandler "github.com/medilink/records-api/internal/handler/auth"
	recordHandler "github.com/medilink/records-api/internal/handler/record"
	"github.com/medilink/records-api/internal/middleware"
	"github.com/medilink/records-api/internal/repository/postgres"
	"github.com/medilink/records-api/internal/router"
	authService "github.com/medilink/records-api/internal/service/auth"
	"github.com/medilink/records-api/internal/service/history"
	recordService "github.com/medilink/records-api/internal/service/record"
	"github.com/medilink/records-api/pkg/auth"
	"github.com/medilink/records-api/pkg/logger"
	"github.com/medilink/records-api/pkg/metrics"
	"github.com/medilink/records-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Logging.Level)

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis backs token revocation and the doctor search-history cache.
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Initialize repositories
	recordRepo := postgres.NewRecordRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Initialize services
	m := metrics.NewMetrics("medilink")
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher, redisClient,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour, m)
	recordSvc := recordService.NewService(recordRepo, m)
	historyStore := history.NewRedisStore(redisClient)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	recordH := recordHandler.NewHandler(recordSvc, historyStore)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	r := router.NewRouter(authMiddleware, authH, recordH, h, router.RouterConfig{
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORSConfig:     corsConfig,
		MetricsPrefix:  "medilink",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
