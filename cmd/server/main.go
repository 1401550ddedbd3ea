package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appaccount "github.com/kitchencloud/backend/internal/application/account"
	appordering "github.com/kitchencloud/backend/internal/application/ordering"
	apprecommendation "github.com/kitchencloud/backend/internal/application/recommendation"
	"github.com/kitchencloud/backend/internal/domain/recommendation"
	"github.com/kitchencloud/backend/internal/infrastructure/auth"
	"github.com/kitchencloud/backend/internal/infrastructure/cache"
	"github.com/kitchencloud/backend/internal/infrastructure/config"
	"github.com/kitchencloud/backend/internal/infrastructure/event"
	"github.com/kitchencloud/backend/internal/infrastructure/logger"
	"github.com/kitchencloud/backend/internal/infrastructure/persistence"
	"github.com/kitchencloud/backend/internal/infrastructure/telemetry"
	"github.com/kitchencloud/backend/internal/interfaces/http/handler"
	"github.com/kitchencloud/backend/internal/interfaces/http/middleware"
	"github.com/kitchencloud/backend/internal/interfaces/http/router"
)

//	@title			Kitchen Cloud Order API
//	@version		1.0
//	@description	Order placement, order ledger and dish recommendations for the Kitchen Cloud marketplace.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Kitchen Cloud backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFromTelemetry(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFromTelemetry(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := mp.Meter("kitchencloud-backend")

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFromTelemetry(cfg.Telemetry), log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	var poolMetrics *telemetry.PoolMetrics
	if sqlDB, err := db.DB.DB(); err == nil {
		if poolMetrics, err = telemetry.NewPoolMetrics(meter, sqlDB); err != nil {
			log.Warn("Connection pool metrics disabled", zap.Error(err))
		}
	}

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	frequencyRepo := persistence.NewGormFrequencyRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Redis-backed stores, in-memory when Redis is disabled or unreachable
	stores := cache.NewFactory(cfg.Redis, cache.WithLogger(log))
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Application services
	placementService := appordering.NewPlacementService(txScope)
	orderService := appordering.NewOrderService(orderRepo, txScope)
	accountService := appaccount.NewService(accountRepo)
	recommendationService := apprecommendation.NewService(frequencyRepo)

	if orderMetrics, err := telemetry.NewOrderMetrics(meter); err != nil {
		log.Warn("Order metrics disabled", zap.Error(err))
	} else {
		placementService.SetRecorder(orderMetrics)
	}

	if cfg.Idempotency.Enabled {
		store, err := stores.CreateIdempotencyStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		placementService.SetIdempotencyStore(store, cfg.Idempotency.TTL)
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	if cfg.Cache.Enabled {
		recCache, err := stores.CreateRecommendationCache(recommendation.CacheConfig{
			Enabled: true,
			TTL:     cfg.Cache.RecommendationTTL,
		})
		if err != nil {
			log.Fatal("Failed to create recommendation cache", zap.Error(err))
		}
		defer func() { _ = recCache.Close() }()
		recommendationService.SetCache(recCache, cfg.Cache.RecommendationTTL)
		eventBus.Subscribe(event.NewRecommendationInvalidator(recCache))
	}

	placementService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	var limiter *middleware.RateLimiter
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Tracing(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(meter, log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	health := handler.NewHealthHandler(db)
	if client := stores.Client(); client != nil {
		health.AddCheck("redis", handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}))
	}

	router.Mount(engine, auth.NewJWTService(cfg.JWT), router.Handlers{
		Orders:          handler.NewOrderHandler(placementService, orderService),
		Accounts:        handler.NewAccountHandler(accountService),
		Recommendations: handler.NewRecommendationHandler(recommendationService),
		Health:          health,
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if limiter != nil {
		limiter.Stop()
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if poolMetrics != nil {
		_ = poolMetrics.Stop()
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// corsConfig overlays the configured lists on the defaults
func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}
