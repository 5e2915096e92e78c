package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pon3939/SummarizeCharacterSheets/internal/adapters"
	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/engine"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/spreadsheet"
	"github.com/pon3939/SummarizeCharacterSheets/internal/storage"
	"github.com/pon3939/SummarizeCharacterSheets/internal/telemetry"
	"github.com/pon3939/SummarizeCharacterSheets/internal/web"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config; empty to use the environment only")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := setupLogging(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to open log output: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: Failed to set up tracing: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	location, err := cfg.Spreadsheet.Location()
	if err != nil {
		log.Printf("Warning: %v, using +09:00", err)
		location = spreadsheet.DefaultLocation()
	}

	// Relational store is required
	var sqlStore *storage.SQLStore
	switch cfg.Database.Driver {
	case "sqlite":
		sqlStore, err = storage.NewSQLiteStore(cfg.Database.SQLitePath, location)
	default:
		sqlStore, err = storage.NewMySQLStore(cfg.Database.MySQL, location)
	}
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.Database.Driver, err)
	}
	defer sqlStore.Close()
	log.Printf("%s connected successfully", cfg.Database.Driver)

	hub := web.NewNotificationHub()
	go hub.Run(ctx)

	notifiers := engine.MultiNotifier{engine.LogNotifier{}, hub}

	// Redis keeps the notification log and the cross-process run lock
	var notificationLog interfaces.NotificationLog
	redisStore, err := storage.NewRedisStore(cfg.Database.Redis, cfg.Notification)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisStore = nil
	} else {
		defer redisStore.Close()
		log.Println("Redis connected successfully")
		notifiers = append(notifiers, redisStore)
		notificationLog = redisStore
	}

	var writer interfaces.SheetWriter
	if cfg.Spreadsheet.SpreadsheetID == "" {
		log.Println("Warning: No spreadsheet_id configured. Sheet updates are disabled.")
	} else {
		sheetsWriter, err := adapters.NewGoogleSheetsWriter(ctx, cfg.Spreadsheet)
		if err != nil {
			log.Printf("Warning: Failed to create Google Sheets client: %v", err)
		} else {
			writer = sheetsWriter
			log.Println("Google Sheets client initialized")
		}
	}

	summary, err := engine.NewSummaryEngine(sqlStore, writer, notifiers, cfg.Engine, spreadsheet.Options{
		SheetBaseURL: cfg.Ytsheet.BaseURL,
		Location:     location,
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	if redisStore != nil {
		summary.SetLocker(redisStore)
	}

	fetchJob := engine.NewFetchJob(adapters.NewYtsheetClient(cfg.Ytsheet), sqlStore, notifiers, cfg.Ytsheet.Interval)

	r := web.NewRouter(web.NewHandlers(summary, fetchJob, sqlStore, notificationLog, hub))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in background
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	stop()

	log.Println("Server stopped")
}

// setupLogging points the standard logger at the configured output. The
// returned file, if any, must be closed by the caller.
func setupLogging(cfg config.LoggingConfig) (*os.File, error) {
	var out io.Writer
	var file *os.File
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out, file = f, f
	}
	log.SetOutput(out)
	return file, nil
}
