package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/dltoledo/pautapanel/internal/adapter/driven/github"
	sqliteadapter "github.com/dltoledo/pautapanel/internal/adapter/driven/sqlite"
	httphandler "github.com/dltoledo/pautapanel/internal/adapter/driving/http"
	webhandler "github.com/dltoledo/pautapanel/internal/adapter/driving/web"
	"github.com/dltoledo/pautapanel/internal/application"
	"github.com/dltoledo/pautapanel/internal/config"
	"github.com/dltoledo/pautapanel/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"cache_ttl", cfg.CacheTTL,
		"github_repo", cfg.GitHubOwner+"/"+cfg.GitHubRepo,
		"github_file", cfg.GitHubFile,
		"github_branch", cfg.GitHubBranch,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the audit database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on the writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	uploadStore := sqliteadapter.NewUploadRepo(db)
	tableStore := githubadapter.NewClient(
		cfg.GitHubToken,
		cfg.GitHubOwner,
		cfg.GitHubRepo,
		cfg.GitHubFile,
		cfg.GitHubBranch,
	)

	// 6. Metrics registry with process/go collectors plus the core counters.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// 7. Create the sync core and the access gate.
	syncSvc := application.NewSyncService(tableStore, uploadStore, cfg.CacheTTL, time.Now, m)
	gate := application.NewAccessGate(application.Secrets{
		Admin:     cfg.AdminKey,
		Secretary: cfg.SecretaryKey,
		Authority: cfg.AuthorityKey,
	}, syncSvc.Cache())

	// 8. Register API, GUI, and metrics routes.
	mux := http.NewServeMux()

	apiHandler := httphandler.NewHandler(syncSvc, gate, uploadStore, slog.Default())
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	webHandler := webhandler.NewHandler(syncSvc, gate, uploadStore, slog.Default())
	webhandler.RegisterRoutes(mux, webHandler)

	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 9. Log table-changed signals so replacements are visible in the logs.
	changed := syncSvc.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
				slog.Info("table changed", "version", syncSvc.Version())
			}
		}
	}()

	slog.Info("pautapanel started", "listen_addr", cfg.ListenAddr)

	// 10. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 11. Graceful shutdown with 10s timeout for HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
