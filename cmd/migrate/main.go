package main

import (
	"flag"
	"fmt"
	"log"

	"foodhub-be/internal/config"
	"foodhub-be/internal/db"
	"foodhub-be/internal/logger"

	"go.uber.org/zap"
)

type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() error
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or version")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}

	m, err := db.NewMigrator(database, logger.L())
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if err := run(m, *mode); err != nil {
		logger.L().Error("migration failed", zap.String("mode", *mode), zap.Error(err))
		log.Fatal(err)
	}
}

func run(m migrator, mode string) error {
	switch mode {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		logger.L().Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'version')", mode)
	}
}
