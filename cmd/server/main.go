package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryapp "github.com/NehaS05/NYRApi-sub000/internal/application/delivery"
	appevent "github.com/NehaS05/NYRApi-sub000/internal/application/event"
	locationapp "github.com/NehaS05/NYRApi-sub000/internal/application/location"
	warehouseapp "github.com/NehaS05/NYRApi-sub000/internal/application/warehouse"
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/auth"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/cache"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/config"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/event"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/logger"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/persistence"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/routing"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/telemetry"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/handler"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/middleware"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting field stock service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := meterProvider.Meter("fieldstock")

	// Database
	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	if cfg.Telemetry.DBSlowQueryThreshold > 0 {
		dbTracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThreshold
	}
	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:   log,
		LogLevel: logger.MapGormLogLevel(cfg.Log.Level),
		Tracing:  &dbTracing,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.App.Env == "development" {
		// Production schemas are owned by cmd/migrate
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
	}

	// Stores shared by the HTTP layer and the event handlers
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.Idempotency.AllowFallback),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	var (
		redisClient *redis.Client
		revocations auth.RevocationList = auth.NewInMemoryRevocationList()
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = redisClient.Close() }()
		revocations = auth.NewRedisRevocationList(redisClient, "")
	}

	// Event bus
	ledgerMetrics, err := telemetry.NewLedgerMetrics(telemetry.LedgerMetricsConfig{
		Meter:           meter,
		Logger:          log,
		CollectInterval: cfg.Telemetry.PoolGaugeInterval,
		Provider:        telemetry.NewGormLedgerSnapshotProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize ledger metrics", zap.Error(err))
	}
	if cfg.Telemetry.MetricsEnabled {
		ledgerMetrics.StartPeriodicCollection(ctx, telemetry.NewGormTenantProvider(db.DB))
	}
	defer ledgerMetrics.Stop()

	eventBus := event.NewInMemoryEventBus(log)
	handlers := event.WrapHandlersWithIdempotency([]shared.EventHandler{
		appevent.NewAuditHandler(log),
		appevent.NewLedgerMetricsHandler(ledgerMetrics),
	}, idempotencyStore, log)
	for _, h := range handlers {
		eventBus.Subscribe(h)
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Repositories and services
	directory := persistence.NewGormReferenceDirectory(db.DB)
	stockRepo := persistence.NewGormWarehouseStockRepository(db.DB)
	transferRepo := persistence.NewGormVanTransferRepository(db.DB)
	onHandRepo := persistence.NewGormOnHandRepository(db.DB)
	outwardRepo := persistence.NewGormOutwardRepository(db.DB)
	unlistedRepo := persistence.NewGormUnlistedRepository(db.DB)
	restockRepo := persistence.NewGormRestockRequestRepository(db.DB)
	followupRepo := persistence.NewGormFollowupRequestRepository(db.DB)
	routeRepo := persistence.NewGormRouteRepository(db.DB)
	stopRepo := persistence.NewGormRouteStopRepository(db.DB)

	deliveryScope := persistence.NewDeliveryTransactionScope(db.DB)

	stockService := warehouseapp.NewStockService(stockRepo, directory)
	stockService.SetEventPublisher(eventBus)

	transferService := warehouseapp.NewVanTransferService(transferRepo, directory, persistence.NewWarehouseTransactionScope(db.DB))
	transferService.SetEventPublisher(eventBus)
	transferService.SetLogger(log)

	onHandService := locationapp.NewOnHandService(onHandRepo, directory)
	onHandService.SetEventPublisher(eventBus)
	onHandService.SetLogger(log)

	outwardService := locationapp.NewOutwardService(outwardRepo, directory, persistence.NewLocationTransactionScope(db.DB))
	outwardService.SetEventPublisher(eventBus)
	outwardService.SetLogger(log)

	unlistedService := locationapp.NewUnlistedService(unlistedRepo, directory)
	unlistedService.SetEventPublisher(eventBus)

	requestService := deliveryapp.NewRequestService(restockRepo, followupRepo, directory)

	routeService := deliveryapp.NewRouteService(routeRepo, restockRepo, followupRepo, directory, deliveryScope)
	routeService.SetLogger(log)
	optimizer, err := routing.NewClient(cfg.Routing, log)
	if err != nil {
		log.Info("Route optimization disabled", zap.String("reason", err.Error()))
	} else {
		routeService.SetOptimizer(optimizer)
	}

	stopService := deliveryapp.NewRouteStopService(stopRepo, deliveryScope)
	stopService.SetEventPublisher(eventBus)
	stopService.SetLogger(log)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	defaultTenant := uuid.Nil
	if cfg.App.DefaultTenantID != "" {
		defaultTenant, err = uuid.Parse(cfg.App.DefaultTenantID)
		if err != nil {
			log.Fatal("Invalid default tenant id", zap.String("tenant_id", cfg.App.DefaultTenantID), zap.Error(err))
		}
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		logger.GinMiddleware(log),
		middleware.CORS(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.HTTPMetrics(meter),
	)

	apiMiddleware := []gin.HandlerFunc{
		middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			Verifier:    auth.NewTokenVerifier(cfg.JWT),
			Revocations: revocations,
			Required:    cfg.JWT.Required,
			Logger:      log,
		}),
		middleware.Tenant(middleware.TenantMiddlewareConfig{
			DefaultTenantID: defaultTenant,
			Logger:          log,
		}),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
	}
	if cfg.Idempotency.Enabled {
		apiMiddleware = append(apiMiddleware, middleware.Idempotency(middleware.IdempotencyMiddlewareConfig{
			Store:  idempotencyStore,
			TTL:    cfg.Idempotency.TTL,
			Logger: log,
		}))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"), router.WithAPIMiddleware(apiMiddleware...))
	r.Register(router.FieldStockGroups(router.Handlers{
		WarehouseStock: handler.NewWarehouseStockHandler(stockService),
		VanTransfer:    handler.NewVanTransferHandler(transferService),
		OnHand:         handler.NewOnHandHandler(onHandService),
		Outward:        handler.NewOutwardHandler(outwardService, unlistedService),
		Requests:       handler.NewRequestHandler(requestService),
		Routes:         handler.NewRouteHandler(routeService, stopService),
	})...)
	r.Setup()

	checks := []handler.DependencyCheck{{Name: "database", Check: db.Ping}}
	if redisClient != nil {
		checks = append(checks, handler.DependencyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	router.RegisterSystemRoutes(engine, handler.NewSystemHandler(cfg.App.Name, version, checks...))

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

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not drain", zap.Error(err))
	}
	if closer, ok := idempotencyStore.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
