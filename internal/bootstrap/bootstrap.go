// Package bootstrap wires the whole server together: configuration,
// logging, storage, cache, the auth gate, and the HTTP transport. Run
// owns the process lifecycle from init graph to graceful shutdown.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	domainauth "portfolio-server-go/internal/domain/auth"
	contentservice "portfolio-server-go/internal/domain/content/service"
	"portfolio-server-go/internal/domain/events"
	"portfolio-server-go/internal/domain/markdown"
	platformcache "portfolio-server-go/internal/platform/cache"
	platformconfig "portfolio-server-go/internal/platform/config"
	platformerrors "portfolio-server-go/internal/platform/errors"
	platformlogging "portfolio-server-go/internal/platform/logging"
	platformobservability "portfolio-server-go/internal/platform/observability"
	platformstorage "portfolio-server-go/internal/platform/storage"
	httptransport "portfolio-server-go/internal/transport/http"
	httpadmin "portfolio-server-go/internal/transport/http/admin"
	httppages "portfolio-server-go/internal/transport/http/pages"
	httpsession "portfolio-server-go/internal/transport/http/session"
)

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config      *platformconfig.Config
	configPath  string
	logger      *platformlogging.Logger
	obsShutdown platformobservability.ShutdownFunc
	cache       platformcache.Cache
	credentials *domainauth.CredentialStore
	issuer      *domainauth.Issuer
	gate        *domainauth.Gate
	cookies     *domainauth.SessionCookies
	content     *contentservice.ContentService
	renderer    *markdown.Renderer
}

// Run starts the server lifecycle: it executes the init graph, starts
// the HTTP listener, and blocks until a shutdown signal drains it.
func Run(ctx context.Context) error {
	state := &appState{}

	steps := InitGraph()
	if err := executeInitSteps(ctx, steps, state); err != nil {
		return err
	}

	config := state.config
	logger := state.logger
	if config == nil || logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"config/logger not initialised",
		)
	}
	if state.gate == nil || state.cookies == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"bootstrap state validation",
			"auth gate not initialised",
		)
	}

	logBootstrapGraph(steps, logger)

	defer func() {
		if state.cache != nil {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := state.cache.Close(closeCtx); err != nil {
				logger.WarnTag("CACHE", "cache close failed: %v", err)
			}
			cancel()
		}
		events.Shutdown()
		if err := platformstorage.CloseDatabase(); err != nil {
			logger.WarnTag("STORE", "database close failed: %v", err)
		}
		if state.obsShutdown != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := state.obsShutdown(shutdownCtx); err != nil {
				logger.WarnTag("BOOT", "observability shutdown failed: %v", err)
			}
			cancel()
		}
		logger.Close()
	}()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return err
	}

	if err := waitForShutdown(signalCtx, cancel, logger, group); err != nil {
		return err
	}

	logger.InfoTag("BOOT", "server stopped cleanly")
	return nil
}

func logBootstrapGraph(steps []initStep, logger *platformlogging.Logger) {
	if logger == nil {
		return
	}
	for _, step := range steps {
		logger.DebugTag("BOOT", "init %s done", step.ID)
	}
	logger.InfoTag("BOOT", "initialisation complete, starting services")
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"execute init steps",
			"nil bootstrap state",
		)
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(
				platformerrors.KindBootstrap,
				step.ID,
				"missing execute function",
			)
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}

			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "observability:setup-hooks",
			Title:     "Setup observability hooks",
			DependsOn: []string{"logging:init-provider"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   setupObservabilityStep,
		},
		{
			ID:        "storage:open-database",
			Title:     "Open database",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindStorage,
			Execute:   openDatabaseStep,
		},
		{
			ID:        "storage:seed-admin",
			Title:     "Seed administrator account",
			DependsOn: []string{"storage:open-database"},
			Kind:      platformerrors.KindStorage,
			Execute:   seedAdminStep,
		},
		{
			ID:        "cache:init-driver",
			Title:     "Initialise render cache",
			DependsOn: []string{"config:load", "logging:init-provider"},
			Kind:      platformerrors.KindCache,
			Execute:   initCacheStep,
		},
		{
			ID:        "content:init-service",
			Title:     "Initialise content service",
			DependsOn: []string{"storage:open-database", "cache:init-driver"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initContentStep,
		},
		{
			ID:        "auth:init-gate",
			Title:     "Initialise authentication gate",
			DependsOn: []string{"storage:open-database", "logging:init-provider"},
			Kind:      platformerrors.KindAuth,
			Execute:   initAuthStep,
		},
		{
			ID:        "events:register-handlers",
			Title:     "Register event handlers",
			DependsOn: []string{"cache:init-driver", "content:init-service"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   registerEventHandlersStep,
		},
	}
}

func loadConfigStep(_ context.Context, state *appState) error {
	result, err := platformconfig.NewLoader().Load()
	if err != nil {
		return err
	}
	state.config = result.Config
	state.configPath = result.Path
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	if state == nil || state.config == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"logging:init-provider",
			"config not loaded",
		)
	}

	logger, err := platformlogging.New(platformlogging.Config{
		Level: state.config.Log.Level,
		Dir:   state.config.Log.Dir,
		File:  state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init-provider", "failed to initialise logging provider", err)
	}
	state.logger = logger

	source := state.configPath
	if source == "" {
		source = "defaults+env"
	}
	logger.InfoTag("BOOT", "logging ready [%s] config=%s", state.config.Log.Level, source)
	return nil
}

// Spans and metrics stay quiet unless the log level is debug.
func setupObservabilityStep(ctx context.Context, state *appState) error {
	if state == nil || state.config == nil || state.logger == nil {
		return platformerrors.New(
			platformerrors.KindBootstrap,
			"observability:setup-hooks",
			"config/logger not initialised",
		)
	}

	shutdown, err := platformobservability.Setup(ctx, platformobservability.Config{
		Enabled: strings.EqualFold(state.config.Log.Level, "debug"),
	}, state.logger.Slog())
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "observability:setup-hooks", "failed to setup observability hooks", err)
	}
	state.obsShutdown = shutdown
	return nil
}

func openDatabaseStep(_ context.Context, state *appState) error {
	if err := platformstorage.InitDatabase(state.config.Database.Path); err != nil {
		return err
	}
	state.logger.InfoTag("STORE", "database ready at %s", state.config.Database.Path)
	return nil
}

func seedAdminStep(ctx context.Context, state *appState) error {
	created, err := platformstorage.SeedAdmin(ctx, state.config.Auth.AdminUsername, state.config.Auth.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		state.logger.InfoTag("AUTH", "administrator account %q created", state.config.Auth.AdminUsername)
	} else {
		state.logger.DebugTag("AUTH", "administrator account already provisioned")
	}
	return nil
}

func initCacheStep(_ context.Context, state *appState) error {
	cfg := state.config.Cache
	cacheCfg := platformcache.Config{
		Driver: cfg.Driver,
		TTL:    cfg.TTL,
	}
	if cfg.Driver == platformcache.DriverRedis {
		cacheCfg.Redis = &platformcache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}
	}

	renderCache, err := platformcache.New(cacheCfg)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindCache, "cache:init-driver", "failed to initialise render cache", err)
	}
	state.cache = renderCache

	driver := cfg.Driver
	if driver == "" {
		driver = platformcache.DriverMemory
	}
	state.logger.InfoTag("CACHE", "render cache ready (%s)", driver)
	return nil
}

func initContentStep(_ context.Context, state *appState) error {
	db := platformstorage.GetDB()
	posts := platformstorage.NewPostRepository(db)
	projects := platformstorage.NewProjectRepository(db)

	state.content = contentservice.NewContentService(posts, projects)
	state.renderer = markdown.NewRenderer(state.cache, state.config.Cache.TTL)
	return nil
}

func initAuthStep(_ context.Context, state *appState) error {
	admins := platformstorage.NewAdminRepository(platformstorage.GetDB())

	credentials, err := domainauth.NewCredentialStore(admins)
	if err != nil {
		return err
	}

	issuer, err := domainauth.NewIssuer(state.config.Auth.Secret)
	if err != nil {
		return err
	}
	issuer.WithTTL(state.config.Auth.TokenTTL)

	gate, err := domainauth.NewGate(issuer, admins, state.logger)
	if err != nil {
		return err
	}

	state.credentials = credentials
	state.issuer = issuer
	state.gate = gate
	state.cookies = &domainauth.SessionCookies{
		Name:   state.config.Auth.CookieName,
		TTL:    issuer.TTL(),
		Secure: state.config.SecureCookies(),
	}

	state.logger.InfoTag("AUTH", "authentication gate ready (token ttl %s)", issuer.TTL())
	return nil
}

// registerEventHandlersStep subscribes the cache invalidation and audit
// consumers. Content writes publish asynchronously, so the handlers run
// on the bus workers, never on a request goroutine.
func registerEventHandlersStep(_ context.Context, state *appState) error {
	logger := state.logger
	renderCache := state.cache

	invalidate := func(data events.ContentEventData) {
		if renderCache == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		ctx, finish := platformobservability.StartSpan(ctx, "cache", "invalidate_render")
		err := renderCache.DeletePrefix(ctx, markdown.KeyPrefix(data.Kind, data.ID))
		finish(err)
		if err != nil {
			logger.WarnTag("CACHE", "invalidation for %s %d failed: %v", data.Kind, data.ID, err)
			return
		}
		logger.DebugTag("CACHE", "render cache invalidated for %s %d", data.Kind, data.ID)
	}

	audit := func(event string) func(events.AuthEventData) {
		return func(data events.AuthEventData) {
			logger.Info("[AUTH] audit "+event, map[string]interface{}{
				"username":  data.Username,
				"remote_ip": data.RemoteIP,
				"reason":    data.Reason,
				"at":        data.At.Format(time.RFC3339),
			})
		}
	}

	subscriptions := []struct {
		topic   string
		handler interface{}
	}{
		{events.EventPostSaved, invalidate},
		{events.EventPostDeleted, invalidate},
		{events.EventProjectSaved, invalidate},
		{events.EventProjectDeleted, invalidate},
		{events.EventLoginSucceeded, audit("login_succeeded")},
		{events.EventLoginFailed, audit("login_failed")},
		{events.EventTokenRejected, audit("token_rejected")},
	}
	for _, sub := range subscriptions {
		if err := events.SubscribeAsync(sub.topic, sub.handler); err != nil {
			return platformerrors.Wrap(platformerrors.KindBootstrap, "events:register-handlers",
				"failed to subscribe "+sub.topic, err)
		}
	}

	logger.InfoTag("EVENT", "event handlers registered")
	return nil
}

func startHTTPServer(state *appState, g *errgroup.Group, groupCtx context.Context) error {
	config := state.config
	logger := state.logger

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config: config,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	requireAdmin := httptransport.RequireAdmin(state.gate, state.cookies)
	optionalAdmin := httptransport.OptionalAdmin(state.gate, state.cookies)

	pagesService, err := httppages.NewService(config, state.content, state.renderer, optionalAdmin, logger)
	if err != nil {
		return err
	}
	sessionService, err := httpsession.NewService(config, state.credentials, state.issuer, state.cookies, optionalAdmin, logger)
	if err != nil {
		return err
	}
	adminService, err := httpadmin.NewService(config, state.content, state.cache, requireAdmin, logger)
	if err != nil {
		return err
	}

	if err := pagesService.Register(groupCtx, httpRouter.Root); err != nil {
		return err
	}
	if err := sessionService.Register(groupCtx, httpRouter.Root); err != nil {
		return err
	}
	if err := adminService.Register(groupCtx, httpRouter.Root); err != nil {
		return err
	}
	if err := adminService.RegisterAPI(groupCtx, httpRouter.API); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: httpRouter.Engine,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "server listening on http://%s", addr)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "server shut down gracefully")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "server failed: %v", err)
			return err
		}
		return nil
	})

	return nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *platformlogging.Logger,
	g *errgroup.Group,
) error {
	<-ctx.Done()
	logger.InfoTag("BOOT", "shutdown signal received (%v), draining services", context.Cause(ctx))

	cancel()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("BOOT", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("BOOT", "all services stopped")
	case <-time.After(15 * time.Second):
		timeoutErr := errors.New("shutdown timed out")
		logger.ErrorTag("BOOT", "shutdown timed out, forcing exit")
		return timeoutErr
	}
	return nil
}

// loadConfigAndLogger runs only the config and logging steps; tests use
// it to get a working logger without touching storage.
func loadConfigAndLogger() (*platformconfig.Config, *platformlogging.Logger, error) {
	state := &appState{}

	steps := []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init-provider",
			Title:     "Initialise logging provider",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
	}

	if err := executeInitSteps(context.Background(), steps, state); err != nil {
		return nil, nil, err
	}

	return state.config, state.logger, nil
}
