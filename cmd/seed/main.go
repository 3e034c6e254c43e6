// Command seed loads the demo application collection for one user.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"job-copilot-backend/config"
	"job-copilot-backend/internal/domain"
	"job-copilot-backend/internal/repository"
	"job-copilot-backend/internal/repository/record"
	"job-copilot-backend/pkg/logger"
	"job-copilot-backend/pkg/redis"
)

func main() {
	var (
		userID string
		driver string
		legacy bool
	)
	pflag.StringVarP(&userID, "user", "u", "", "User ID (JWT subject) to seed")
	pflag.StringVarP(&driver, "driver", "d", "", "Store driver override: memory, redis or postgres")
	pflag.BoolVar(&legacy, "legacy", false, "Write only the legacy jobApplications key")
	pflag.Parse()

	if userID == "" {
		fmt.Fprintln(os.Stderr, "usage: seed --user <id> [--driver redis|postgres] [--legacy]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if driver != "" {
		cfg.StoreDriver = driver
	}
	logger.Init(cfg.LogLevel)

	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable", "error", err)
		}
		defer redis.Close()
	}

	ctx := context.Background()
	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer stores.Close()

	if err := seed(ctx, stores.Records, userID, legacy); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	logger.Log.Info("Demo applications seeded", "user_id", userID, "driver", cfg.StoreDriver, "legacy", legacy)
}

// seed writes the demo collection. In legacy mode only the old key is written,
// which exercises the forward migration on the next read.
func seed(ctx context.Context, store domain.RecordStore, userID string, legacy bool) error {
	apps := demoApplications()
	if legacy {
		return store.Save(ctx, userID, domain.RecordJobApplications, apps)
	}
	return record.NewApplicationRepository(store).ReplaceAll(ctx, userID, apps)
}
