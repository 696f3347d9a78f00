package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/multierr"

	"smp/internal/platform/config"
	platformmetrics "smp/internal/platform/metrics"
	platformpostgres "smp/internal/platform/postgres"
	"smp/internal/platform/tracing"
	"smp/internal/registry/backend"
	"smp/internal/registry/backends"
	"smp/internal/registry/handler"
	"smp/internal/registry/locator"
	"smp/internal/registry/meta"
	registrymetrics "smp/internal/registry/metrics"
	"smp/internal/registry/registration"
	"smp/internal/registry/service"
	registrypostgres "smp/internal/registry/store/postgres"
	audit "smp/pkg/platform/audit"
	"smp/pkg/platform/audit/publisher"
	kafkastore "smp/pkg/platform/audit/store/kafka"
	"smp/pkg/platform/audit/store/memory"
	postgresstore "smp/pkg/platform/audit/store/postgres"
)

// app is the registry context: everything the HTTP API needs, built once at
// startup and released by Close.
type app struct {
	router   http.Handler
	managers *meta.Manager
	audit    *publisher.Publisher
	tracing  *tracing.Provider
	closers  []func() error
}

// appMetrics are registered once per process; promauto panics on a second
// registration.
type appMetrics struct {
	http     *platformmetrics.Metrics
	registry *registrymetrics.Metrics
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	return buildApp(ctx, cfg, log, appMetrics{
		http:     platformmetrics.New(),
		registry: registrymetrics.New(),
	})
}

func buildApp(ctx context.Context, cfg config.Config, log *slog.Logger, m appMetrics) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			err = multierr.Append(err, a.Close(ctx))
		}
	}()

	if a.tracing, err = tracing.Setup(cfg.Tracing); err != nil {
		return nil, err
	}

	registry, err := backend.NewRegistry(backends.Installers()...)
	if err != nil {
		return nil, err
	}
	a.managers, err = meta.New(registry, cfg.Backend, meta.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := a.managers.InitFromConfiguration(ctx); err != nil {
		return nil, err
	}

	store, err := a.auditStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.audit = publisher.NewPublisher(store,
		publisher.WithAsyncBuffer(cfg.Audit.AsyncBuffer),
		publisher.WithLogger(log),
	)

	client, err := newLocatorClient(cfg.Locator, log, m.registry)
	if err != nil {
		return nil, err
	}
	coordinator := registration.New(a.managers, client,
		registration.WithLogger(log),
		registration.WithMetrics(m.registry),
		registration.WithAuditEmitter(a.audit),
		registration.WithLocatorEnabled(cfg.Locator.Enabled),
	)
	svc := service.New(a.managers, coordinator,
		service.WithLogger(log),
		service.WithAuditPublisher(a.audit),
	)
	a.router = handler.New(svc, svc, a.managers,
		handler.WithLogger(log),
		handler.WithMetrics(m.http),
		handler.WithAdminToken(cfg.Server.AdminToken),
		handler.WithRequestTimeout(cfg.Server.WriteTimeout),
	).Router()
	return a, nil
}

func newLocatorClient(cfg config.Locator, log *slog.Logger, m *registrymetrics.Metrics) (locator.Client, error) {
	if !cfg.Enabled {
		return locator.Disabled{}, nil
	}
	return locator.NewSOAPClient(cfg,
		locator.WithLogger(log),
		locator.WithMetrics(m),
	)
}

// auditStore opens the configured audit sink and registers its cleanup.
func (a *app) auditStore(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Store, error) {
	switch cfg.Audit.Sink {
	case config.AuditSinkSQL:
		db, err := platformpostgres.Open(ctx, cfg.Backend.SQL)
		if err != nil {
			return nil, fmt.Errorf("open audit database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if cfg.Backend.SQL.Migrate && cfg.Backend.ID != registrypostgres.BackendID {
			if err := registrypostgres.Migrate(cfg.Backend.SQL.DSN); err != nil {
				return nil, err
			}
		}
		return postgresstore.New(db), nil
	case config.AuditSinkKafka:
		store, err := kafkastore.New(cfg.Audit.Kafka.Brokers, cfg.Audit.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		if cfg.Audit.Kafka.EnsureTopic {
			if err := store.EnsureTopic(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil
	default:
		log.InfoContext(ctx, "audit events are kept in memory", "retain", cfg.Audit.MemoryRetain)
		return memory.NewInMemoryStore(memory.WithRetain(cfg.Audit.MemoryRetain)), nil
	}
}

// Close drains the audit publisher before its sink goes away, then closes
// the backend and flushes spans.
func (a *app) Close(ctx context.Context) error {
	var err error
	if a.audit != nil {
		err = multierr.Append(err, a.audit.Close())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	if a.managers != nil {
		err = multierr.Append(err, a.managers.Close())
	}
	if a.tracing != nil {
		err = multierr.Append(err, a.tracing.Shutdown(ctx))
	}
	return err
}
