package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/application/usecase"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/service"
	"github.com/bibbank/origination/internal/infrastructure/adapter"
	"github.com/bibbank/origination/internal/infrastructure/config"
	"github.com/bibbank/origination/internal/infrastructure/messaging"
	"github.com/bibbank/origination/internal/infrastructure/store"
	grpcPresentation "github.com/bibbank/origination/internal/presentation/grpc"
	"github.com/bibbank/origination/internal/presentation/rest"
	"github.com/bibbank/origination/migrations"
	"github.com/bibbank/origination/pkg/auth"
	pkgkafka "github.com/bibbank/origination/pkg/kafka"
	"github.com/bibbank/origination/pkg/observability"
	pkgpostgres "github.com/bibbank/origination/pkg/postgres"
)

const expiryInterval = time.Minute

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting origination-service",
		"env", cfg.Env,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"store", cfg.StoreBackend,
	)

	// Tracing.
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, traceErr := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    cfg.OTLPInsecure,
		})
		if traceErr != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", traceErr)
		} else {
			defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush

	funnelMetrics, err := observability.NewFunnelMetrics(meterProvider.Meter(cfg.ServiceName))
	if err != nil {
		logger.Error("failed to register funnel metrics", "error", err)
		os.Exit(1)
	}

	// Session store.
	factory, checks, closeStore := openStore(ctx, cfg, logger, funnelMetrics)
	defer closeStore()

	// Event publisher.
	var publisher port.EventPublisher = messaging.NewLogEventPublisher(logger)
	if cfg.Kafka.Enabled {
		producer, prodErr := pkgkafka.NewProducer(cfg.Kafka.Producer())
		if prodErr != nil {
			logger.Error("failed to create kafka producer", "error", prodErr)
			os.Exit(1)
		}
		defer func() { _ = producer.Close() }() //nolint:errcheck // best-effort flush
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing events to kafka", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}

	// Session tokens.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:        cfg.Auth.JWTSecret,
		PrivateKeyPEM: cfg.Auth.PrivateKeyPEM,
		Issuer:        cfg.Auth.JWTIssuer,
		Expiration:    cfg.SessionTTL,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Wire domain services and adapters.
	clock := adapter.SystemClock{}
	registry := session.NewRegistry(factory, clock, logger)
	tokens := adapter.NewTokenGenerator()
	uploader := adapter.NewSimulatedUploader(adapter.UploaderConfig{
		LatencyMin: cfg.Simulation.UploadLatencyMin,
		LatencyMax: cfg.Simulation.UploadLatencyMax,
		KYCDelay:   cfg.Simulation.KYCProcessingDelay,
	}, logger)
	engine := service.NewEligibilityEngine()
	resolver := service.NewDocumentRequirementResolver()

	deps := usecase.Deps{
		Publisher: publisher,
		Clock:     clock,
		Metrics:   funnelMetrics,
		Logger:    logger,
	}

	// Wire use cases.
	handler := grpcPresentation.NewOriginationHandler(grpcPresentation.UseCases{
		StartSession:      usecase.NewStartSessionUseCase(registry, jwtSvc, deps),
		EndSession:        usecase.NewEndSessionUseCase(registry, deps),
		GetStage:          usecase.NewGetStageUseCase(),
		StartApplication:  usecase.NewStartApplicationUseCase(deps),
		GoBack:            usecase.NewGoBackUseCase(deps),
		SubmitIntake:      usecase.NewSubmitIntakeUseCase(tokens, deps),
		VerifyIdentity:    usecase.NewVerifyIdentityUseCase(service.NewCreditScoreSimulator(), deps),
		AssessEligibility: usecase.NewAssessEligibilityUseCase(engine, deps),
		SelectPlan:        usecase.NewSelectPlanUseCase(engine, deps),
		RequiredDocuments: usecase.NewRequiredDocumentsUseCase(resolver, deps),
		UploadDocuments:   usecase.NewUploadDocumentsUseCase(resolver, uploader, deps),
		AcknowledgeTerms:  usecase.NewAcknowledgeTermsUseCase(uploader, tokens, deps),
		GetAgreement:      usecase.NewGetAgreementUseCase(deps),
		Assist:            usecase.NewAssistUseCase(adapter.NewKeywordClassifier(), deps),
	}, registry, logger)

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(handler, grpcPresentation.ServerConfig{
		ServiceName: cfg.ServiceName,
		CertFile:    cfg.TLS.CertFile,
		KeyFile:     cfg.TLS.KeyFile,
		Reflection:  cfg.Reflection,
	}, jwtSvc, logger)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, checks, logger).RegisterRoutes(mux, metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Expire abandoned sessions.
	go func() {
		ticker := time.NewTicker(expiryInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := registry.Expire(ctx, cfg.SessionTTL); n > 0 {
					logger.Info("expired sessions", "count", n)
				}
			}
		}
	}()

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	registry.Shutdown(shutdownCtx)

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("origination-service stopped")
}

// openStore builds the session store factory for the configured backend.
// Remote backends are wrapped so that a failure degrades sessions to memory
// instead of failing requests. An unreachable backend at startup does the
// same for every session.
func openStore(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	metrics *observability.FunnelMetrics,
) (port.SessionStoreFactory, map[string]rest.Check, func()) {
	checks := map[string]rest.Check{}
	noop := func() {}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.StoreBackend {
	case config.StoreRedis:
		client, err := store.NewRedisClient(connectCtx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return degradedAtStartup(ctx, config.StoreRedis, err, logger, metrics), checks, noop
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		return store.NewFallbackFactory(store.NewRedisFactory(client, cfg.SessionTTL), config.StoreRedis, logger, metrics),
			checks, func() { _ = client.Close() } //nolint:errcheck

	case config.StorePostgres:
		pgCfg := cfg.DB.Postgres()
		pool, err := pkgpostgres.NewPool(connectCtx, pgCfg)
		if err != nil {
			return degradedAtStartup(ctx, config.StorePostgres, err, logger, metrics), checks, noop
		}
		if err := pkgpostgres.RunMigrations(pgCfg.DSN(), migrations.FS, cfg.MigrationsDir); err != nil {
			logger.Warn("migration warning", "error", err)
		}
		checks["postgres"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
		logger.Info("connected to database", "host", pgCfg.Host, "database", pgCfg.Database)
		return store.NewFallbackFactory(store.NewPostgresFactory(pool), config.StorePostgres, logger, metrics),
			checks, pool.Close
	}

	return store.NewMemoryFactory(), checks, noop
}

func degradedAtStartup(
	ctx context.Context,
	backend string,
	err error,
	logger *slog.Logger,
	metrics *observability.FunnelMetrics,
) port.SessionStoreFactory {
	metrics.StoreDegraded(ctx, backend)
	logger.Warn("session store unavailable, running in memory", "backend", backend, "error", err)
	return store.NewMemoryFactory()
}
