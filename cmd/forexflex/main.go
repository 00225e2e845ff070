package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/forexflex/internal/adapters/currencyfile"
	"github.com/SscSPs/forexflex/internal/adapters/exchangerateapi"
	"github.com/SscSPs/forexflex/internal/adapters/history"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	"github.com/SscSPs/forexflex/internal/core/services"
	"github.com/SscSPs/forexflex/internal/handlers"
	"github.com/SscSPs/forexflex/internal/middleware"
	"github.com/SscSPs/forexflex/internal/repositories/database/pgsql"
	"github.com/SscSPs/forexflex/pkg/config"
	"github.com/SscSPs/forexflex/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title ForexFlex API
// @version 1.0
// @description Live currency conversion with a per-session conversion history.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The currency list is read once and never reloaded.
	currencies, err := currencyfile.LoadCurrencies(cfg.CurrencyListPath)
	if err != nil {
		logger.Error("Failed to load currency list", slog.String("path", cfg.CurrencyListPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Currency list loaded", slog.Int("count", len(currencies)))

	historyRepo, closeHistory, err := newHistoryRepository(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize history store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeHistory()

	container := services.NewServiceContainer(portsrepo.RepositoryProvider{
		CurrencyRepo: currencyfile.NewCurrencyRepository(currencies),
		HistoryRepo:  historyRepo,
		RateProvider: exchangerateapi.NewClient(cfg.ExchangeRate, logger),
	})

	rateLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("history_store", cfg.HistoryStore))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newHistoryRepository builds the configured history store. History lives as long as the session cookie.
func newHistoryRepository(cfg *config.Config, logger *slog.Logger) (portsrepo.HistoryRepositoryFacade, func(), error) {
	switch cfg.HistoryStore {
	case config.HistoryStoreRedis:
		return newRedisHistory(cfg, logger)
	case config.HistoryStorePostgres:
		return newPostgresHistory(cfg, logger)
	default:
		return history.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}
}

func newRedisHistory(cfg *config.Config, logger *slog.Logger) (portsrepo.HistoryRepositoryFacade, func(), error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Info("Redis history store connected", slog.String("addr", opts.Addr))

	return history.NewRedisStore(client, cfg.SessionTTL), func() {
		if cerr := client.Close(); cerr != nil {
			logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
		}
	}, nil
}

func newPostgresHistory(cfg *config.Config, logger *slog.Logger) (portsrepo.HistoryRepositoryFacade, func(), error) {
	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		return nil, nil, err
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")

	return pgsql.NewHistoryRepository(dbPool, cfg.SessionTTL), func() { database.ClosePgxPool(dbPool) }, nil
}
