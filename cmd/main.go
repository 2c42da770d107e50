package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nac-jewellers-backup/vendorAPI/internal/api/handlers"
	"github.com/nac-jewellers-backup/vendorAPI/internal/api/router"
	"github.com/nac-jewellers-backup/vendorAPI/internal/auth"
	"github.com/nac-jewellers-backup/vendorAPI/internal/config"
	"github.com/nac-jewellers-backup/vendorAPI/internal/logging"
	"github.com/nac-jewellers-backup/vendorAPI/internal/middleware"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/nac-jewellers-backup/vendorAPI/internal/notify"
	"github.com/nac-jewellers-backup/vendorAPI/internal/otp"
	"github.com/nac-jewellers-backup/vendorAPI/internal/services"
	"github.com/nac-jewellers-backup/vendorAPI/internal/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Server.Environment)

	// Initialize storage
	store, err := newStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to initialize storage")
	}

	authenticator, err := auth.NewAuthenticator(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize authenticator")
	}

	var (
		limitStore middleware.RateLimitStore = middleware.NewMemoryStore()
		otpStore   otp.Store                 = otp.NewMemoryStore()
	)
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, using in-process stores")
		} else {
			limitStore = middleware.NewRedisStore(client)
			otpStore = otp.NewRedisStore(client)
		}
		cancel()
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "NAC Vendor Backend Service",
		ErrorHandler: router.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	// Initialize services, handlers and middleware
	records := services.NewRecordService(store)
	accounts := services.NewAccountService(
		store,
		authenticator,
		notify.NewSMSGateway(cfg.SMS.GatewayURL, cfg.SMS.SenderID),
		otpStore,
		cfg.SMS.OTPTTL,
	)

	recordHandlers := make([]*handlers.RecordHandler, 0, 4)
	for _, e := range []*models.Entity{models.Admin, models.Vendor, models.Service, models.Enquiry} {
		recordHandlers = append(recordHandlers, handlers.NewRecordHandler(records, e, log))
	}

	apiRouter := router.NewRouter(
		app,
		handlers.NewAuthHandler(accounts, log),
		recordHandlers,
		middleware.NewAuthMiddleware(authenticator, log),
		middleware.NewRateLimiter(limitStore, true, log),
		middleware.RateLimitConfig{
			Enabled: cfg.Server.RateLimit.Enabled,
			Limit:   cfg.Server.RateLimit.Limit,
			Window:  cfg.Server.RateLimit.Window,
		},
	)

	// Setup routes
	apiRouter.SetupRoutes()

	// Start server
	log.Info().Str("port", cfg.Server.Port).Str("driver", cfg.Store.Driver).Msg("server starting")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func newStore(ctx context.Context, cfg *config.Config) (storage.DocumentStore, error) {
	switch cfg.Store.Driver {
	case "memory":
		return storage.NewInMemoryStorage(), nil
	case "postgres":
		return storage.NewPostgresStore(storage.BuildDSN(cfg.Database))
	case "dynamodb":
		return storage.NewDynamoStoreFromConfig(ctx, cfg.Store)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
