package main

import (
	"database/sql"
	"flag"
	"fmt"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	version, err := run(database, *mode)
	if err != nil {
		logger.L().Fatal("migration failed", zap.String("mode", *mode), zap.Error(err))
	}
	logger.L().Info("migrations complete", zap.String("mode", *mode), zap.Uint("version", version))
}

func run(database *sql.DB, mode string) (uint, error) {
	dir, err := db.ParseDirection(mode)
	if err != nil {
		return 0, err
	}

	version, err := db.RunMigrations(database, dir)
	if err != nil {
		return 0, fmt.Errorf("migrate %s: %w", dir, err)
	}
	return version, nil
}
