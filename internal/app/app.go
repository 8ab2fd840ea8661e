// Package app wires the site's dependencies and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/config"
	"github.com/raselahmedweb/innovensky/internal/event"
	handler "github.com/raselahmedweb/innovensky/internal/handler/http"
	"github.com/raselahmedweb/innovensky/internal/notify"
	"github.com/raselahmedweb/innovensky/internal/repository/postgres"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/internal/web"
	"github.com/raselahmedweb/innovensky/migrations"
	"github.com/raselahmedweb/innovensky/pkg/database"
	"github.com/raselahmedweb/innovensky/pkg/health"
	pkgkafka "github.com/raselahmedweb/innovensky/pkg/kafka"
	"github.com/raselahmedweb/innovensky/pkg/middleware"
	"github.com/raselahmedweb/innovensky/pkg/tracing"
)

// Name labels logs, metrics and traces.
const Name = "innovensky-web"

// App wires together all dependencies and runs the site.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	webhook        *notify.Webhook
	memLimiter     *handler.MemoryLimiter
	messages       *service.MessageService
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// A missing session secret is reported before anything is opened.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	gate, err := auth.NewGate(cfg.SessionSecret, cfg.SessionLifetime)
	if err != nil {
		return nil, fmt.Errorf("session gate: %w", err)
	}
	proxies, err := handler.NewProxyTrust(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize OpenTelemetry tracing.
	a.tracerShutdown, err = tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	if err := a.openDatabase(ctx); err != nil {
		a.abort()
		return nil, err
	}

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return a.pool.Ping(ctx)
	})

	// Login rate limiting: Redis when configured, otherwise per process.
	var limiter handler.LoginLimiter
	if rc := cfg.Redis(); rc.Enabled() {
		client, err := database.NewRedisClient(ctx, rc)
		if err != nil {
			a.abort()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
		limiter = handler.NewRedisLimiter(client, cfg.LoginRateLimit, cfg.LoginRateWindow)
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		logger.Info("login rate limiter using redis", slog.String("addr", rc.Addr()))
	} else {
		a.memLimiter = handler.NewMemoryLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
		limiter = a.memLimiter
		logger.Info("login rate limiter using process memory")
	}

	// Contact integrations. Interfaces stay nil when disabled.
	var publisher service.ContactPublisher
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, cfg.KafkaContactTopic, logger)
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaContactTopic),
		)
	}

	var notifier service.ContactNotifier
	if cfg.ContactWebhookURL != "" {
		a.webhook = notify.NewCircuitBreakerWebhook(cfg.ContactWebhookURL, logger)
		notifier = a.webhook
		logger.Info("contact webhook enabled")
	}

	renderer, err := web.NewRenderer(logger)
	if err != nil {
		a.abort()
		return nil, fmt.Errorf("load templates: %w", err)
	}

	// Build the dependency graph.
	accountRepo := postgres.NewAccountRepository(a.pool)
	projectRepo := postgres.NewProjectRepository(a.pool)
	teamRepo := postgres.NewTeamRepository(a.pool)
	messageRepo := postgres.NewMessageRepository(a.pool)
	statsRepo := postgres.NewStatsRepository(a.pool)
	a.messages = service.NewMessageService(messageRepo, publisher, notifier, logger)

	router := handler.NewRouter(handler.RouterDeps{
		AppName:    Name,
		Projects:   service.NewProjectService(projectRepo, logger),
		Team:       service.NewTeamService(teamRepo, logger),
		Messages:   a.messages,
		Stats:      service.NewStatsService(statsRepo),
		Verifier:   auth.NewVerifier(accountRepo, auth.NewHasher(auth.DefaultCost), logger),
		Gate:       gate,
		Limiter:    limiter,
		Proxies:    proxies,
		Cookie:     handler.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.CookieSecure()},
		Renderer:   renderer,
		PageMaxAge: cfg.PageCacheSeconds,
		Health:     healthHandler,
		CORS:       middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins),
		Logger:     logger,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// openDatabase connects the pool, applies migrations and registers metrics.
func (a *App) openDatabase(ctx context.Context) error {
	pgCfg := a.cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to PostgreSQL",
		slog.String("host", pgCfg.Host),
		slog.Int("port", pgCfg.Port),
		slog.String("database", pgCfg.DBName),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, a.logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	a.logger.Info("database migrations completed")

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, Name); err != nil {
		return fmt.Errorf("register pool metrics: %w", err)
	}
	if t := a.cfg.SlowQueryThreshold(); t > 0 {
		database.SetSlowQueryLogging(t, a.logger)
	}
	return nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	if a.memLimiter != nil {
		go a.memLimiter.Run(ctx)
	}

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return errors.Join(err, a.Shutdown())
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Background contact deliveries
// 3. Tracer (flush pending spans from drained requests)
// 4. Kafka producer
// 5. Webhook client, Redis, then the PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Let background contact deliveries finish while Kafka and the
	// webhook client are still open.
	if a.messages != nil {
		deliveryCtx, deliveryCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer deliveryCancel()
		if err := a.messages.Wait(deliveryCtx); err != nil {
			a.logger.Warn("contact deliveries still running at shutdown", slog.String("error", err.Error()))
		}
	}

	// 3. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 4. Close Kafka producer.
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 5. Release the remaining clients.
	if err := a.release(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// abort unwinds a partially built App: the tracer and Kafka producer are
// stopped before the clients that release closes.
func (a *App) abort() {
	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	_ = a.release()
}

// release closes the webhook client, Redis and the pool.
func (a *App) release() error {
	var err error
	if a.webhook != nil {
		a.webhook.Close()
	}
	if a.redis != nil {
		if cerr := a.redis.Close(); cerr != nil {
			a.logger.Error("redis close error", slog.String("error", cerr.Error()))
			err = cerr
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	return err
}
