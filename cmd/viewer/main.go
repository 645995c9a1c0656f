// viewer serves the read-only HTTP database browser.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careernav/config"
	"careernav/db"
	"careernav/viewer"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "viewer: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	sugar := logger.Sugar()

	if _, err := os.Stat(cfg.DBPath); err != nil {
		sugar.Fatalf("database %s not found, run initdb first", cfg.DBPath)
	}

	conn, err := db.Open(cfg)
	if err != nil {
		sugar.Fatalf("open database: %v", err)
	}

	srv := viewer.New(db.NewSQLStore(conn), sugar, cfg.ViewerRowLimit)

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("viewer listening", "addr", cfg.ViewerAddr, "db", cfg.DBPath)
		errCh <- srv.Listen(cfg.ViewerAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			sugar.Fatalf("server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			sugar.Errorw("shutdown error", "err", err)
		}
	}
}
