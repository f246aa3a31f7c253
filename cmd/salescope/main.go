package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	corecfg "github.com/salescope-lab/salescope/internal/core/config"
	"github.com/salescope-lab/salescope/internal/metrics"
	"github.com/salescope-lab/salescope/internal/migrations"
	"github.com/salescope-lab/salescope/internal/reporting"
	"github.com/salescope-lab/salescope/internal/server"
	"github.com/salescope-lab/salescope/internal/store"
	csvsource "github.com/salescope-lab/salescope/internal/store/csv"
	pgsource "github.com/salescope-lab/salescope/internal/store/postgres"
)

func main() {
	configPath := flag.String("config", "salescope.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Snapshot Source
	source, cleanup, err := buildSource(cfg)
	if err != nil {
		slog.Error("Failed to initialize snapshot source", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// 3. Load the Initial Snapshot
	// Schema problems (a required column missing from the dataset) surface
	// here, before the server ever accepts a query.
	snap, err := source.LoadSnapshot(context.Background())
	if err != nil {
		slog.Error("Failed to load snapshot", "error", err)
		os.Exit(1)
	}
	holder := store.NewSnapshotHolder(snap)
	slog.Info("Initial snapshot loaded",
		"version", snap.Version(),
		"records", snap.Len(),
		"has_customer_name", snap.HasCustomerName(),
	)

	// 4. Initialize Metrics
	meter := metrics.NewRegistry()
	meter.SnapshotSize.Set(float64(snap.Len()))

	// 5. Initialize Reporting (query API + result cache)
	cacheTTL, err := cfg.Cache.TTLDuration()
	if err != nil {
		slog.Error("Invalid cache TTL", "value", cfg.Cache.TTL, "error", err)
		os.Exit(1)
	}
	if !cfg.Cache.Enabled {
		cacheTTL = 0
	}
	reportingSvc := reporting.NewService(holder, source, meter, cacheTTL)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), holder, cfg.Server.Mode)
	reportingSvc.RegisterRoutes(srv.Engine)
	srv.Engine.GET("/metrics", gin.WrapH(meter.Handler()))

	// 7. Run
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// buildSource wires the configured snapshot source. The returned cleanup
// releases whatever the source holds open (a no-op for CSV).
func buildSource(cfg *corecfg.Config) (store.Source, func(), error) {
	switch cfg.Dataset.SourceType {
	case "postgres":
		adapter, err := pgsource.NewAdapter(
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
		)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunMigrations(adapter.DB(), cfg.Database.AutoMigrate); err != nil {
			adapter.Close()
			return nil, nil, err
		}
		if err := adapter.ValidateSchema(); err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return adapter, func() { adapter.Close() }, nil

	case "csv":
		mapping := csvsource.DefaultMapping()
		if cfg.Dataset.MappingPath != "" {
			var err error
			if mapping, err = csvsource.LoadMapping(cfg.Dataset.MappingPath); err != nil {
				return nil, nil, err
			}
		}
		return csvsource.NewLoader(cfg.Dataset.CSVPath, mapping), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported dataset source type %q", cfg.Dataset.SourceType)
	}
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
