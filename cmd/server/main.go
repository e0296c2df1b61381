package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"consentflow/internal/consent/gateway"
	"consentflow/internal/consent/handler"
	"consentflow/internal/consent/service"
	"consentflow/internal/consent/store/view"
	jwttoken "consentflow/internal/jwt_token"
	"consentflow/internal/platform/config"
	"consentflow/internal/platform/httpserver"
	"consentflow/internal/platform/logger"
	"consentflow/internal/platform/metrics"
	"consentflow/internal/platform/postgres"
	"consentflow/internal/platform/redis"
	httptransport "consentflow/internal/transport/http"
	"consentflow/pkg/platform/audit/publisher"
	auditmemory "consentflow/pkg/platform/audit/store/memory"
	auditpostgres "consentflow/pkg/platform/audit/store/postgres"
	"consentflow/pkg/platform/circuit"
)

const (
	viewTokenIssuer = "consentflow"
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/consent.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "consentflow: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New(cfg.Log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var (
		store  service.ViewStore
		memory *view.InMemoryStore
		checks []httptransport.HealthCheck
	)
	if redisClient != nil {
		defer redisClient.Close()
		store = view.NewRedis(redisClient.Client)
		checks = append(checks, redisClient.Health)
		log.Info("view store: redis")
	} else {
		memory = view.NewInMemoryStore()
		store = memory
		log.Info("view store: in-memory")
	}

	breaker := circuit.New("consent-api",
		circuit.WithFailureThreshold(cfg.Consent.BreakerFailures),
		circuit.WithCooldown(cfg.Consent.BreakerCooldown),
	)
	api := gateway.New(cfg.Consent.APIBaseURL,
		gateway.WithTimeout(cfg.Consent.GatewayTimeout),
		gateway.WithBreaker(breaker),
		gateway.WithMetrics(m),
		gateway.WithLogger(log),
	)

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	auditOpts := []publisher.Option{
		publisher.WithAsyncBuffer(cfg.Audit.Buffer),
		publisher.WithLogger(log),
	}
	var auditStore publisher.Store
	if db != nil {
		defer db.Close()
		pgStore := auditpostgres.New(db)
		if err := pgStore.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate audit store: %w", err)
		}
		auditStore = pgStore
		checks = append(checks, db.PingContext)
		log.Info("audit store: postgres")
	} else {
		auditStore = auditmemory.NewInMemoryStore(auditmemory.WithCapacity(cfg.Audit.MemoryCapacity))
		auditOpts = append(auditOpts, publisher.WithEventLogging())
		log.Info("audit store: in-memory, events are also logged", "capacity", cfg.Audit.MemoryCapacity)
	}
	auditor := publisher.NewPublisher(auditStore, auditOpts...)
	defer auditor.Close()

	controller, err := service.New(api, api, store,
		service.WithLogger(log),
		service.WithAuditPublisher(auditor),
		service.WithMetrics(m),
		service.WithViewTTL(cfg.Consent.ViewTTL),
		service.WithRedirectHosts(cfg.Consent.RedirectHosts),
	)
	if err != nil {
		return fmt.Errorf("build consent controller: %w", err)
	}

	tokens := jwttoken.NewJWTService(cfg.Consent.SigningKey, viewTokenIssuer)
	consentHandler := handler.New(controller, tokens, log, cfg.Consent.RenderWait)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Health:         allHealthy(checks),
	}, consentHandler)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting consentflow", "addr", cfg.Addr, "api", cfg.Consent.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	if memory != nil {
		g.Go(func() error {
			sweep(gctx, memory, log)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		if err := controller.Wait(shutdownCtx); err != nil {
			log.Warn("client lookups still running at shutdown", "error", err)
		}
		return nil
	})
	return g.Wait()
}

// allHealthy joins the failures of every configured dependency check.
func allHealthy(checks []httptransport.HealthCheck) httptransport.HealthCheck {
	if len(checks) == 0 {
		return nil
	}
	return func(ctx context.Context) error {
		var errs []error
		for _, check := range checks {
			if err := check(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// sweep drops expired views from the in-memory store until ctx is done.
func sweep(ctx context.Context, store *view.InMemoryStore, log *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(ctx); n > 0 {
				log.Debug("expired views swept", "count", n)
			}
		}
	}
}
