package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kevinblo/fwords-backend/internal/config"
	"github.com/kevinblo/fwords-backend/internal/database"
	"github.com/kevinblo/fwords-backend/internal/importer"
	"github.com/kevinblo/fwords-backend/internal/progress"
	"github.com/kevinblo/fwords-backend/internal/scheduler"
	"github.com/kevinblo/fwords-backend/internal/server"
	"github.com/kevinblo/fwords-backend/pkg/logger"
)

func main() {
	importPath := flag.String("import-words", "", "import a word catalog from an xlsx or csv file and exit")
	flag.Parse()

	cfg, err := config.Init()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	if err := database.Connect(cfg.DB); err != nil {
		appLogger.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close()

	if *importPath != "" {
		runImport(appLogger, *importPath)
		return
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(progress.NewRecalculator(appLogger), cfg.Auth, appLogger)
		if err := sched.Start(); err != nil {
			appLogger.Fatal("failed to start scheduler", "error", err)
		}
		defer sched.Stop()
	}

	srv := server.New(cfg, appLogger)
	go func() {
		appLogger.Info("server starting", "host", cfg.HTTP.Host, "port", cfg.HTTP.Port)
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server failed", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLogger.Info("received signal, shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown failed", "error", err)
	}
}

func runImport(appLogger *logger.Logger, path string) {
	importConfig := importer.DefaultConfig()
	importConfig.FilePath = path

	result, err := importer.ImportWords(context.Background(), importConfig)
	if err != nil {
		appLogger.Fatal("import failed", "error", err)
	}
	appLogger.Info("import finished",
		"processed", result.TotalProcessed,
		"words_created", result.WordsCreated,
		"words_skipped", result.WordsSkipped,
		"translations_created", result.TranslationsCreated,
		"errors", len(result.Errors),
	)
	for _, e := range result.Errors {
		appLogger.Warn("import row failed", "detail", e)
	}
}
