package root

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"lifequest/internal/config"
	"lifequest/internal/engine"
	"lifequest/internal/logging"
	"lifequest/internal/storage"
)

// app bundles everything a command needs.
type app struct {
	cfg config.Config
	log *zap.Logger
	db  *sql.DB
	svc *engine.Service
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("database opened", zap.String("path", cfg.Database.Path))

	svc := engine.NewService(db,
		engine.WithBalance(cfg.Balance.Engine()),
		engine.WithLogger(log.Named("engine")))
	cleanup := func() {
		_ = db.Close()
		_ = log.Sync()
	}
	return &app{cfg: cfg, log: log, db: db, svc: svc}, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	a, cleanup, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.svc, cleanup, nil
}
