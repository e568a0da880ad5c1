package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/migrations"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		scripts, err := migrations.Postgres()
		if err != nil {
			logger.Fatalw("Failed to read migration scripts", "error", err)
		}
		for _, s := range scripts {
			fmt.Printf("-- %s\n%s\n", s.Name, s.SQL)
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")
	if err := migrations.Apply(ctx, db.DB, logger); err != nil {
		logger.Fatalw("Failed to apply migrations", "error", err)
	}

	fmt.Println("Migration process completed")
}
