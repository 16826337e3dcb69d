package app

import (
	"context"
	"log"
	"os"
	"time"

	"loomconnect/internal/config"
	"loomconnect/internal/database"
	"loomconnect/internal/database/migration"
	dbpostgres "loomconnect/internal/database/postgres"
	"loomconnect/internal/database/seeder"
	"loomconnect/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: os.Getenv("MIGRATIONS_DIR")}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	rdb := cache.NewRedis(logger)

	return &Container{Config: cfg, DB: db, Cache: rdb, Logger: logger}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
