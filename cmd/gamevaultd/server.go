package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"

	v1 "github.com/gamevault/gamevault/internal/api/v1"
	"github.com/gamevault/gamevault/internal/config"
	"github.com/gamevault/gamevault/internal/importer"
	"github.com/gamevault/gamevault/internal/library"
	"github.com/gamevault/gamevault/internal/migrations"
	"github.com/gamevault/gamevault/internal/reconcile"
	"github.com/gamevault/gamevault/pkg/igdb"
	"github.com/gamevault/gamevault/pkg/match"
	"github.com/gamevault/gamevault/pkg/steam"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func runServer(configPath string) error {
	// Load config
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = discovered
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return &config.ConfigError{Path: configPath, Errors: errs}
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores (always created) ===
	libraryStore := library.NewStore(db)
	historyStore := importer.NewHistoryStore(db)

	// === Clients (optional - nil if not configured) ===
	var igdbClient *igdb.Client
	if cfg.IGDB != nil {
		igdbClient = igdb.New(cfg.IGDB.ClientID, cfg.IGDB.ClientSecret,
			igdb.WithLogger(logger))
	}

	var steamClient *steam.Client
	if cfg.Steam != nil {
		steamClient = steam.NewClient(cfg.Steam.APIKey)
	}

	// === Services ===
	var imp *importer.Importer
	if steamClient != nil && igdbClient != nil {
		policy := match.Policy{
			SimilarityFloor: cfg.Import.SimilarityFloor,
			WordPenalty:     cfg.Import.WordPenalty,
			ScoreFloor:      cfg.Import.ScoreFloor,
		}
		opts := reconcile.Options{
			BatchSize:   cfg.Import.BatchSize,
			BatchDelay:  time.Duration(cfg.Import.BatchDelayMS) * time.Millisecond,
			SearchLimit: cfg.Import.SearchLimit,
		}
		rec := reconcile.New(igdbClient, policy, opts, logger.With("component", "reconcile"))
		imp = importer.New(db, steamClient, cfg.Steam.SteamID, rec, logger.With("component", "importer"))
	}

	// === Background Jobs ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var scheduler *cron.Cron
	if imp != nil && cfg.Steam.SyncSchedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Steam.SyncSchedule, func() {
			syncCtx, syncCancel := context.WithTimeout(ctx, 10*time.Minute)
			defer syncCancel()

			res, err := imp.ImportSteam(syncCtx)
			if err != nil {
				logger.Error("scheduled sync failed", "error", err)
				return
			}
			logger.Info("scheduled sync complete",
				"run_id", res.RunID,
				"imported", len(res.Imported),
			)
		})
		if err != nil {
			return fmt.Errorf("sync schedule %q: %w", cfg.Steam.SyncSchedule, err)
		}
		scheduler.Start()
		logger.Info("scheduled sync enabled", "schedule", cfg.Steam.SyncSchedule)
	}

	// === HTTP Setup ===
	mux := http.NewServeMux()

	deps := v1.ServerDeps{
		Library: libraryStore,
		History: historyStore,
	}
	if igdbClient != nil {
		deps.Searcher = igdbClient
	}
	if imp != nil {
		deps.Importer = imp
	}

	apiV1, err := v1.New(deps, v1.Config{Version: version})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	apiV1.RegisterRoutes(mux)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"igdb", igdbClient != nil,
		"steam", steamClient != nil,
		"log_level", cfg.Server.LogLevel,
	)

	// === HTTP Server ===
	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Stop scheduled jobs before tearing down the importer's dependencies
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	cancel()

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
