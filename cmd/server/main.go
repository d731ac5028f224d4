package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/stylegest/internal/api"
	"github.com/dgallion1/stylegest/internal/config"
	"github.com/dgallion1/stylegest/internal/extract"
	"github.com/dgallion1/stylegest/internal/pipeline"
	"github.com/dgallion1/stylegest/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize report archive.
	reports, err := store.Open(cfg.ReportDBPath)
	if err != nil {
		log.Error("open report store", "error", err, "path", cfg.ReportDBPath)
		os.Exit(1)
	}

	// Initialize pipeline.
	stats := extract.NewLatencyStats(time.Hour)
	analyzer, err := pipeline.NewAnalyzerFromConfig(cfg, stats, log)
	if err != nil {
		log.Error("build analyzer", "error", err)
		os.Exit(1)
	}
	orch := pipeline.NewOrchestrator(pipeline.OrchestratorConfig{
		Workers:      cfg.WorkerCount,
		MaxQueueSize: cfg.MaxQueueSize,
		JobTTL:       cfg.JobTTL,
		Parser:       pipeline.ParserOptions(cfg),
	}, analyzer, reports, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, reports, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		reports.Close()
	}()

	log.Info("starting stylegest", "port", cfg.Port, "db", cfg.ReportDBPath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
}
