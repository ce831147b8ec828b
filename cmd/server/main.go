package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-impact-engine/internal/logger"
	"news-impact-engine/internal/server"
	"news-impact-engine/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - quotes may be simulated")
	}

	eng, err := initializeEngine(ctx, cfg)
	must(err)

	srv := server.New(cfg, eng)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Server started", "addr", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigc:
		logger.Info(ctx, "Shutdown signal received", "signal", sig.String())
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Server failed", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(ctx, "Server shutdown failed", err)
	}

	_ = trace.Shutdown(shutdownCtx)
	_ = logger.Shutdown(shutdownCtx)

	logger.Info(ctx, "Server stopped.")
}
