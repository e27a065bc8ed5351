package main

import (
	"fmt"
	"log/slog"
	"os"

	"accounthub/pkg/activity"
	"accounthub/pkg/billing"
	"accounthub/pkg/events"
	"accounthub/pkg/profilestore"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg := loadConfig()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger, os.Args[1:]); err != nil {
		logger.Error("accounthub stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanup happens before main exits.
func run(cfg Config, logger *slog.Logger, args []string) error {
	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}

	// `./accounthub migrate` runs AutoMigrate and exits.
	if len(args) > 0 && args[0] == "migrate" {
		migrate(db)
		fmt.Println("migration completed")
		return nil
	}
	if cfg.AutoMigrate {
		migrate(db)
	}

	profiles, err := newProfileStore(cfg, db)
	if err != nil {
		return fmt.Errorf("profile store unavailable: %w", err)
	}

	publisher, err := events.NewPublisher(cfg.AMQPURL, logger)
	if err != nil {
		return fmt.Errorf("event publisher unavailable: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close event publisher", "error", err)
		}
	}()

	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is empty, billing portal requests will fail")
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		profiles: profiles,
		activity: activity.NewService(db, activity.WithPublisher(publisher), activity.WithLogger(logger)),
		portal:   billing.NewStripePortal(cfg.StripeSecretKey),
		catalog:  billing.NewCatalog(billing.PriceIDs{Premium: cfg.PremiumPriceID, Enterprise: cfg.EnterprisePriceID}),
	}

	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(a)
	logger.Info("listening", "port", cfg.Port, "profile_store", cfg.ProfileStore)
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func newLogger(cfg Config) *slog.Logger {
	if cfg.Release {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newProfileStore picks the backend named by PROFILE_STORE.
func newProfileStore(cfg Config, db *gorm.DB) (profilestore.Store, error) {
	switch cfg.ProfileStore {
	case "", "memory":
		return profilestore.NewMemoryStore(), nil
	case "postgres":
		return profilestore.NewGormStore(db), nil
	case "redis":
		return profilestore.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})), nil
	default:
		return nil, fmt.Errorf("unknown PROFILE_STORE %q (want memory, postgres or redis)", cfg.ProfileStore)
	}
}
