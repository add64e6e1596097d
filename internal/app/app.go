package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/transfer-market/internal/config"
	"github.com/riskibarqy/transfer-market/internal/domain/negotiation"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/notify/webhook"
	"github.com/riskibarqy/transfer-market/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/transfer-market/internal/platform/id"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/resilience"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

// App is the assembled API process: the HTTP server plus everything that
// has to be released when it stops.
type App struct {
	Server *http.Server

	watcher       *usecase.CooldownWatcher
	notifications *usecase.NotificationService
	closers       []func() error
	logger        *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (_ *App, err error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}
	defer func() {
		if err != nil {
			a.closeResources()
		}
	}()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.closers...)

	var sender usecase.NotificationSender
	if cfg.NotifyWebhookURL != "" {
		client, err := webhook.NewClient(webhook.ClientConfig{
			URL:     cfg.NotifyWebhookURL,
			Token:   cfg.NotifyWebhookToken,
			Timeout: cfg.NotifyWebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NotifyCircuitEnabled,
				FailureThreshold: cfg.NotifyCircuitFailureCount,
				OpenTimeout:      cfg.NotifyCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.NotifyCircuitHalfOpenMaxReq,
			},
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build notification webhook: %w", err)
		}
		sender = client
	}

	notificationSvc, err := usecase.NewNotificationService(store.notifications, store.players, sender, cfg.NotifyWorkers, logger)
	if err != nil {
		return nil, fmt.Errorf("build notification service: %w", err)
	}
	a.notifications = notificationSvc

	tracker := usecase.NewCooldownTracker(store.cooldowns, cfg.NegotiationCooldown, logger)
	a.watcher = usecase.NewCooldownWatcher(tracker, notificationSvc, cfg.CooldownTickInterval, logger)

	evaluator := negotiation.NewEvaluator(negotiation.DefaultRules().WithCooldown(cfg.NegotiationCooldown), nil)
	negotiationSvc := usecase.NewNegotiationService(
		store.clubs,
		store.players,
		store.gateway,
		evaluator,
		tracker,
		a.watcher,
		notificationSvc,
		idgen.NewPrefixedGenerator("off"),
		logger,
	)
	marketSvc := usecase.NewMarketService(store.players, store.clubs, store.preferences, logger)
	transferSvc := usecase.NewTransferService(store.clubs, store.players, store.transfers, store.gateway, notificationSvc, logger)
	exchangeSvc := usecase.NewExchangeService(store.clubs, store.players, store.transfers, store.gateway, notificationSvc, logger)

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		Timeout:        cfg.AnubisTimeout,
		CacheTTL:       cfg.AnubisCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		Logger: logger,
	})

	handler := httpapi.NewHandler(marketSvc, negotiationSvc, transferSvc, exchangeSvc, notificationSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	restored, err := a.watcher.Restore(ctx)
	if err != nil {
		// a missing restore only delays unblock notifications
		logger.WarnContext(ctx, "restore cooldown watchers failed", "error", err)
	} else if restored > 0 {
		logger.InfoContext(ctx, "cooldown watchers restored", "count", restored)
	}

	return a, nil
}

// Close stops the watchers first so no unblock notification is queued on a
// drained pool, then releases storage.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.closeResources()
}

func (a *App) closeResources() error {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.notifications != nil {
		a.notifications.Close()
		a.notifications = nil
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
