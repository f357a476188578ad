package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/pos-service/internal/application/catalogcache"
	"github.com/yuzvak/pos-service/internal/application/commands"
	"github.com/yuzvak/pos-service/internal/application/register"
	"github.com/yuzvak/pos-service/internal/application/use_cases"
	"github.com/yuzvak/pos-service/internal/config"
	"github.com/yuzvak/pos-service/internal/infrastructure/http/handlers"
	"github.com/yuzvak/pos-service/internal/pkg/generator"
	"github.com/yuzvak/pos-service/internal/pkg/logger"
)

// Dependencies are the application services the HTTP layer exposes. DB and
// Redis are only used for health reporting and may be nil.
type Dependencies struct {
	Catalog  *catalogcache.Cache
	Register *register.Register
	Checkout *use_cases.CheckoutUseCase
	Stock    *commands.StockHandler
	Reports  *use_cases.ReportUseCase
	IDs      *generator.CodeGenerator
	DB       *sql.DB
	Redis    *redis.Client
}

type Server struct {
	server          *http.Server
	requestTimeout  time.Duration
	logger          *logger.Logger
	ids             *generator.CodeGenerator
	healthHandler   *handlers.HealthHandler
	catalogHandler  *handlers.CatalogHandler
	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	stockHandler    *handlers.StockHandler
	reportHandler   *handlers.ReportHandler
}

func NewServer(cfg *config.Config, deps Dependencies, logger *logger.Logger) *Server {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s := &Server{
		server:          server,
		requestTimeout:  cfg.Server.RequestTimeout(),
		logger:          logger,
		ids:             deps.IDs,
		healthHandler:   handlers.NewHealthHandler(deps.DB, deps.Redis, deps.Catalog, logger),
		catalogHandler:  handlers.NewCatalogHandler(deps.Catalog, logger),
		cartHandler:     handlers.NewCartHandler(deps.Register, logger),
		checkoutHandler: handlers.NewCheckoutHandler(deps.Checkout, logger),
		stockHandler:    handlers.NewStockHandler(deps.Stock, logger),
		reportHandler:   handlers.NewReportHandler(deps.Reports, logger),
	}
	server.Handler = s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
