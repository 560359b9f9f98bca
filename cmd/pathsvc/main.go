package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pathforge/gpml/internal/api"
	"github.com/pathforge/gpml/internal/xref"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	sourcesPath := flag.String("datasources", "configs/datasources.yaml", "Path to data sources YAML file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load data source registry ─────────────────────────────────────────────
	loader, err := xref.NewLoader(*sourcesPath)
	if err != nil {
		slog.Error("failed to load data sources", "err", err)
		os.Exit(1)
	}
	slog.Info("data sources loaded", "count", loader.Registry().Len())

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(reg *xref.Registry) {
		slog.Info("data sources hot-reloaded", "count", reg.Len())
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("data source watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.New(loader)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	slog.Info("goodbye")
}
