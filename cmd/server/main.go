package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yuzvak/pos-service/internal/application/catalogcache"
	"github.com/yuzvak/pos-service/internal/application/commands"
	"github.com/yuzvak/pos-service/internal/application/ports"
	"github.com/yuzvak/pos-service/internal/application/register"
	"github.com/yuzvak/pos-service/internal/application/use_cases"
	"github.com/yuzvak/pos-service/internal/config"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/server"
	"github.com/yuzvak/pos-service/internal/infrastructure/inventory"
	"github.com/yuzvak/pos-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/pos-service/internal/infrastructure/persistence/postgres"
	"github.com/yuzvak/pos-service/internal/infrastructure/persistence/redis"
	"github.com/yuzvak/pos-service/internal/infrastructure/scheduler"
	"github.com/yuzvak/pos-service/internal/pkg/clock"
	"github.com/yuzvak/pos-service/internal/pkg/generator"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	bootLog := logger.NewLogger()

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		bootLog.Fatal("Failed to load configuration", "error", configErr)
	}

	log := logger.NewLoggerWithLevel(cfg.Log.Level)
	defer func() { _ = log.Sync() }()
	log.Info("Starting POS Service", "inventory_base_url", cfg.Inventory.BaseURL)

	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	var (
		db              *sql.DB
		checkoutJournal ports.CheckoutJournal
	)
	if cfg.Database.Enabled {
		conn, err := postgres.NewConnection(serverCtx, cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", "error", err, "driver", cfg.Database.Driver)
		}
		defer conn.Close()

		if err := postgres.RunMigrations(serverCtx, conn, cfg.Database.MigrationsPath, log); err != nil {
			log.Fatal("Failed to run migrations", "error", err)
		}

		db = conn.GetDB()
		checkoutJournal = postgres.NewJournalRepository(conn)
		monitoring.NewDBMetricsCollector(db).StartCollecting(serverCtx, 30*time.Second)
	}

	var (
		redisClient *goredis.Client
		mirror      ports.CatalogMirror
	)
	if cfg.Redis.Enabled {
		conn, err := redis.NewConnection(serverCtx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		defer conn.Close()

		redisClient = conn.GetClient()
		mirror = redis.NewCatalogMirror(conn, cfg.Redis.SnapshotKey, time.Duration(cfg.Redis.SnapshotTTL)*time.Second, log)
	}

	clk := clock.NewRealClock()
	ids := generator.NewCodeGenerator()
	client := inventory.NewClient(cfg.Inventory.BaseURL, cfg.Inventory.Timeout(), log)

	catalog := catalogcache.NewCache(client, mirror, clk, log)
	if err := catalog.Warm(serverCtx); err != nil {
		log.Warn("Initial catalog load failed, register starts with the available snapshot",
			"error", err,
			"items", catalog.Snapshot().Len())
	}

	reg := register.New(catalog, log)
	checkoutUseCase := use_cases.NewCheckoutUseCase(reg, client, catalog, checkoutJournal, ids, clk, log)
	reportUseCase := use_cases.NewReportUseCase(client, clk, log)
	stockHandler := commands.NewStockHandler(client, client, catalog, ids, log)

	httpServer := server.NewServer(cfg, server.Dependencies{
		Catalog:  catalog,
		Register: reg,
		Checkout: checkoutUseCase,
		Stock:    stockHandler,
		Reports:  reportUseCase,
		IDs:      ids,
		DB:       db,
		Redis:    redisClient,
	}, log)

	var metricsServer *monitoring.MetricsServer
	if addr := cfg.Server.MetricsAddr(); addr != "" {
		metricsServer = monitoring.NewMetricsServer(addr)
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed", "error", err)
			}
		}()
	}

	refresher := scheduler.NewCatalogRefresher(catalog, cfg.Catalog.RefreshInterval(), log)
	go refresher.Start(serverCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		refresher.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Error("Metrics server shutdown error", "error", err)
			}
		}

		serverStopCtx()
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
