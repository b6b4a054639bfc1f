package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	adapthttp "motors/internal/adapter/http"
	"motors/internal/adapter/postgres"
	"motors/internal/app"
	"motors/internal/config"
	"motors/internal/token"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration", "error", err)
		os.Exit(1)
	}

	codec, err := token.NewCodec(cfg.SessionSecret)
	if err != nil {
		logger.Error("session codec", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db open", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	accountSvc := app.NewAccountService(db)
	inventorySvc := app.NewInventoryService(db)
	messageSvc := app.NewMessageService(db.Messages())

	srv, err := adapthttp.New(accountSvc, inventorySvc, messageSvc, codec,
		cfg.Environment == config.Production, env("WEB_DIR", "web"), logger)
	if err != nil {
		logger.Error("server setup", "error", err)
		os.Exit(1)
	}

	logger.Info("listening", "addr", cfg.Addr, "environment", string(cfg.Environment))
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
