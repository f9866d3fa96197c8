package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"immotycoon/internal/api"
	"immotycoon/internal/config"
	"immotycoon/internal/game"
	"immotycoon/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAPIFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	bal, err := config.LoadBalance(cfg.BalanceFile)
	if err != nil {
		logger.Error("load balance failed, using defaults", "err", err)
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres store init failed", "err", err)
			os.Exit(1)
		}
		defer pg.Close()
		st = pg
	} else {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Error("file store init failed", "err", err)
			os.Exit(1)
		}
		st = fs
	}

	gameSvc := game.NewService(st, logger, bal)
	gameSvc.Restore(ctx)

	server := api.New(logger, gameSvc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("immotycoon api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
