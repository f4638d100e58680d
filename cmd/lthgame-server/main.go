package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/httpapi"
	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/metrics"
	"github.com/LeonIngman/LTH-Game-sub001/internal/adapters/persistence"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
	"github.com/LeonIngman/LTH-Game-sub001/internal/application/setup"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/config"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/database"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/levels"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/logging"
	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search ./config.yaml, ./configs, /etc/lthgame)")
	flag.Parse()

	fmt.Println("LTH Game Server v0.1.0")
	fmt.Println("======================")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.PIDFile != "" {
		pf := pidfile.New(cfg.Server.PIDFile)
		if err := pf.Acquire(); err != nil {
			log.Fatalf("Failed to acquire PID file lock: %v", err)
		}
		defer func() {
			if err := pf.Release(); err != nil {
				log.Printf("Warning: failed to release PID file: %v", err)
			}
		}()
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	logger, closer, err := logging.NewStdLoggerFromConfig(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	// 1. Database
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 2. Level catalog
	catalog, err := levels.NewCatalog(cfg.Game.LevelsDir)
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}
	fmt.Printf("Loaded %d levels\n", len(catalog.List()))

	// 3. Mediator, middleware before handlers
	med := common.NewMediator()

	opts := httpapi.Options{
		Address:           cfg.Server.Address,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		RequestsPerSecond: float64(cfg.Server.RateLimit.Requests),
		Burst:             cfg.Server.RateLimit.Burst,
	}

	if cfg.Metrics.Enabled {
		if err := initMetrics(med); err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}
		opts.MetricsHandler = metrics.Handler()
		opts.MetricsPath = cfg.Metrics.Path
		fmt.Printf("Metrics exposed at %s\n", cfg.Metrics.Path)
	}

	// 4. Handlers
	registry := setup.NewHandlerRegistry(
		persistence.NewGormSessionRepository(db),
		persistence.NewGormPerformanceRepository(db),
		persistence.NewGormTransactionRepository(db),
		persistence.NewGormUnitOfWork(db),
		catalog,
		nil, // nil = use RealClock
	)
	if err := registry.RegisterAll(med); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	// 5. Serve until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.NewServer(med, logger, opts)
	fmt.Printf("\n✓ Listening on %s\n", cfg.Server.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	fmt.Println("\nServer stopped")
	return nil
}

func initMetrics(med common.Mediator) error {
	metrics.InitRegistry()

	gameCollector := metrics.NewGameMetricsCollector()
	if err := gameCollector.Register(); err != nil {
		return err
	}
	metrics.SetGlobalGameCollector(gameCollector)

	financialCollector := metrics.NewFinancialMetricsCollector()
	if err := financialCollector.Register(); err != nil {
		return err
	}
	metrics.SetGlobalFinancialCollector(financialCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return err
	}
	med.RegisterMiddleware(metrics.PrometheusMiddleware(commandCollector))
	return nil
}
