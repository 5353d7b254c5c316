package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/expensave/expensave-backend/internal/application/services"
	"github.com/expensave/expensave-backend/internal/config"
	"github.com/expensave/expensave-backend/internal/delivery/handler"
	"github.com/expensave/expensave-backend/internal/infrastructure"
	"github.com/expensave/expensave-backend/internal/infrastructure/db/postgres"
)

func main() {
	// Local development convenience; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := postgres.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	redisClient := infrastructure.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("redis unreachable, session cache disabled: %v", err)
			redisClient = nil
		}
		cancel()
	}

	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	tokens := infrastructure.NewJWTService(cfg.JWTSecret)
	cache := infrastructure.NewSessionCache(redisClient)
	mailer := infrastructure.NewMailService(cfg.SendgridAPIKey, cfg.EmailName, cfg.EmailSender, cfg.FrontendURL)
	google := infrastructure.NewGoogleVerifier(cfg.GoogleClientID)
	facebook := infrastructure.NewFacebookVerifier(cfg.FacebookAppID, cfg.FacebookAppSecret)
	limiter := infrastructure.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMaxRequests)

	sessions := services.NewSessionRegistry(userRepo, cache)
	authService := services.NewAuthService(userRepo, categoryRepo, tokens, sessions, mailer, google, facebook)
	userService := services.NewUserService(userRepo, sessions)
	categoryService := services.NewCategoryService(categoryRepo)
	transactionService := services.NewTransactionService(transactionRepo)

	health := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx)
	}

	h := handler.New(authService, userService, categoryService, transactionService, health)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	handler.RegisterRoutes(e, h,
		handler.Authenticate(tokens, sessions),
		handler.RateLimit(limiter),
	)

	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}
