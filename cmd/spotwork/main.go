package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JeromeFabre77/SpotWork/internal/core/config"
	"github.com/JeromeFabre77/SpotWork/internal/core/httpclient"
	"github.com/JeromeFabre77/SpotWork/internal/core/model"
	"github.com/JeromeFabre77/SpotWork/internal/core/observability"
	"github.com/JeromeFabre77/SpotWork/internal/core/server"
	"github.com/JeromeFabre77/SpotWork/internal/dataset"
	"github.com/JeromeFabre77/SpotWork/internal/logger"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "spotwork",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting spotwork",
		"addr", cfg.Addr,
		"version", Version,
		"web_dir", cfg.WebDir,
		"data_dir", cfg.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dataset preflight: load once so broken or missing data files
	// surface at startup instead of as an empty map in the browser.
	preflight(ctx, cfg)

	if err := server.Run(ctx, cfg, appLog); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}

func preflight(ctx context.Context, cfg config.Config) {
	zl := logger.Build(logger.Config{Level: cfg.LogLevel, Component: "preflight"}, os.Stdout)
	log := logger.NewSlog(&zl)

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Dataset.FetchTimeout)
	defer cancel()

	loader := dataset.NewLoader(httpclient.NewOutbound(), log)
	st, err := loader.Load(loadCtx, []dataset.Source{
		{Category: model.Coworking, URL: cfg.Dataset.CoworkingURL},
		{Category: model.Library, URL: cfg.Dataset.LibrariesURL},
		{Category: model.Cafe, URL: cfg.Dataset.CafesURL},
	})
	if err != nil {
		if errors.Is(err, dataset.ErrNoData) {
			log.Error("no dataset available; the map will be empty", "err", err)
		} else {
			log.Warn("dataset preflight failed", "err", err)
		}
		return
	}
	for _, cat := range model.Categories() {
		log.Info("dataset ready", "category", string(cat), "points", st.CountByCategory(cat))
	}
}
