package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	deploymentservice "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service"
	deploysql "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/sql"
	deployworkers "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application/workers"
	deploymenterrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	deploymentports "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
	templatecatalog "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog"
	catalogsql "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/adapters/sql"
	templateerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
	accesscontrol "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/adapters/opahttp"
	accessports "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/ports"
	userregistry "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry"
	usersql "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/adapters/sql"
	sshkeyadapter "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/adapters/sshkey"
	usererrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	userports "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
	"github.com/infn-datacloud/orchestrator/internal/platform/config"
	"github.com/infn-datacloud/orchestrator/internal/platform/db"
	"github.com/infn-datacloud/orchestrator/internal/platform/httpserver"
	"github.com/infn-datacloud/orchestrator/internal/platform/messaging"
	"github.com/infn-datacloud/orchestrator/internal/platform/secrets"
	"github.com/infn-datacloud/orchestrator/internal/platform/telemetry"
	"github.com/infn-datacloud/orchestrator/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server      *httpserver.Server
	database    *db.Database
	bus         eventBus
	watchPolicy func(ctx context.Context) error
	stopTracing func(ctx context.Context) error
	addr        string
	logger      *slog.Logger
}

type WorkerApp struct {
	database     *db.Database
	bus          eventBus
	relay        deployworkers.OutboxRelay
	metrics      *telemetry.Metrics
	addr         string
	pollInterval time.Duration
	logger       *slog.Logger
}

// eventBus is the slice of the messaging backends both processes need.
type eventBus interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
	Close() error
}

// busPublisher adapts the platform bus to the deployment-service
// publisher port. The contract envelope and the shared envelope carry
// the same fields, so this is a straight copy.
type busPublisher struct {
	bus eventBus
}

func (p busPublisher) Publish(ctx context.Context, topic string, event deploymentports.EventEnvelope) error {
	return p.bus.Publish(ctx, topic, events.Envelope{
		EventID:       event.EventID,
		EventType:     event.EventType,
		SourceService: event.SourceService,
		OccurredAtUTC: event.OccurredAtUTC,
		CorrelationID: event.CorrelationID,
		EntityType:    event.EntityType,
		EntityID:      event.EntityID,
		SchemaVersion: event.SchemaVersion,
		Payload:       event.Payload,
	})
}

// catalogTemplates feeds deployment creation with TOSCA content from
// the catalog.
type catalogTemplates struct {
	catalog templatecatalog.Module
}

func (s catalogTemplates) TemplateContent(ctx context.Context, templateID string) (string, error) {
	template, err := s.catalog.GetTemplate.Execute(ctx, templateID)
	if err != nil {
		if errors.Is(err, templateerrors.ErrTemplateNotFound) {
			return "", deploymenterrors.ErrUnknownTemplate
		}
		return "", err
	}
	return template.Content, nil
}

// registryOwnerKeys resolves the owner's public SSH key through the
// user registry. An owner without a registration deploys with no keys.
type registryOwnerKeys struct {
	registry userregistry.Module
}

func (s registryOwnerKeys) OwnerKeys(ctx context.Context, sub string, issuer string) ([]string, error) {
	user, err := s.registry.GetUser.ByIdentity(ctx, sub, issuer)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []string{user.PublicSSHKey}, nil
}

// templateUsage is the catalog's delete guard, bound to the deployment
// module after both modules exist.
type templateUsage struct {
	inUse func(ctx context.Context, templateID string) (bool, error)
}

func (u *templateUsage) InUse(ctx context.Context, templateID string) (bool, error) {
	if u.inUse == nil {
		return false, nil
	}
	return u.inUse(ctx, templateID)
}

// vaultSecrets swaps the caller's token for one bound to the Vault
// audience, then stores or deletes the user's private key material.
type vaultSecrets struct {
	vault     *secrets.Vault
	exchanger accessports.TokenExchanger
	audience  string
}

func (s vaultSecrets) StoreUserKey(ctx context.Context, caller userports.CallerToken, sub string, privateKeyPEM string) error {
	token, err := s.exchanger.Exchange(ctx, caller.Issuer, caller.AccessToken, s.audience)
	if err != nil {
		return err
	}
	return s.vault.StoreUserKey(ctx, token, sub, privateKeyPEM)
}

func (s vaultSecrets) DeleteUserKey(ctx context.Context, caller userports.CallerToken, sub string) error {
	token, err := s.exchanger.Exchange(ctx, caller.Issuer, caller.AccessToken, s.audience)
	if err != nil {
		return err
	}
	return s.vault.DeleteUserKey(ctx, token, sub)
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, "api")
	ctx := context.Background()

	database, err := db.Connect(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	models := usersql.Models()
	models = append(models, catalogsql.Models()...)
	models = append(models, deploysql.Models()...)
	if err := database.Migrate(models...); err != nil {
		return nil, err
	}

	metrics := telemetry.NewMetrics()
	stopTracing, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return nil, err
	}

	access, err := accesscontrol.NewModule(ctx, accesscontrol.Dependencies{
		AuthnMode:        cfg.AuthnMode,
		AuthzMode:        cfg.AuthzMode,
		LocalTokenSecret: cfg.LocalTokenSecret,
		TrustedIssuers:   trustedIssuers(cfg),
		GroupsClaim:      cfg.GroupsClaim,
		IDPTimeout:       cfg.IDPTimeout,
		AdminEmails:      cfg.AdminEmails,
		AdminGroups:      cfg.AdminGroups,
		OPAURL:           cfg.OPAAuthzURL,
		OPATimeout:       cfg.OPATimeout,
		PolicyPath:       cfg.PolicyPath,
		Metrics:          metrics,
		Logger:           logger,
	})
	if err != nil {
		return nil, err
	}

	var secretStore userports.SecretStore
	var vaultStore *secrets.Vault
	if cfg.VaultEnable {
		vaultStore = secrets.NewVault(secrets.VaultOptions{
			Address: cfg.VaultURL,
			Role:    cfg.VaultRole,
			Mount:   cfg.VaultSecretsMount,
			Timeout: cfg.IDPTimeout,
			Logger:  logger,
		})
		secretStore = vaultSecrets{
			vault:     vaultStore,
			exchanger: access.Exchanger,
			audience:  cfg.VaultBoundAudience,
		}
	}

	users := userregistry.NewModule(userregistry.Dependencies{
		Repo:        usersql.NewRepository(database.DB, logger),
		Keys:        sshkeyadapter.Generator{},
		Secrets:     secretStore,
		Clock:       usersql.SystemClock{},
		IDGenerator: usersql.UUIDGenerator{},
		BaseURL:     cfg.BaseURL,
		ListPath:    cfg.APIPrefix + "/users",
		Logger:      logger,
	})

	usage := &templateUsage{}
	templates := templatecatalog.NewModule(templatecatalog.Dependencies{
		Repo:        catalogsql.NewRepository(database.DB, logger),
		Usage:       usage,
		Clock:       catalogsql.SystemClock{},
		IDGenerator: catalogsql.UUIDGenerator{},
		BaseURL:     cfg.BaseURL,
		ListPath:    cfg.APIPrefix + "/templates",
		Logger:      logger,
	})

	bus, err := newBus(cfg, logger)
	if err != nil {
		return nil, err
	}

	deployRepo := deploysql.NewRepository(database.DB, logger)
	deployments := deploymentservice.NewModule(deploymentservice.Dependencies{
		Repo:           deployRepo,
		Outbox:         deployRepo,
		Templates:      catalogTemplates{catalog: templates},
		OwnerKeys:      registryOwnerKeys{registry: users},
		Publisher:      busPublisher{bus: bus},
		Metrics:        metrics,
		Clock:          deploysql.SystemClock{},
		IDGenerator:    deploysql.UUIDGenerator{},
		CreationTopic:  cfg.KafkaCreateDepTopic,
		RelayBatchSize: cfg.OutboxRelayBatch,
		BaseURL:        cfg.BaseURL,
		ListPath:       cfg.APIPrefix + "/deployments",
		Logger:         logger,
	})
	usage.inUse = deployments.GetDeployment.TemplateInUse

	if cfg.AuthnMode == accesscontrol.AuthnLocal {
		if _, err := users.SeedDevUser.Execute(ctx); err != nil {
			return nil, err
		}
	} else if err := users.RemoveDevUser.Execute(ctx); err != nil {
		return nil, err
	}

	health := httpserver.HealthProbes{DB: database.Ping}
	if cfg.AuthzMode == accesscontrol.AuthzOPA {
		health.OPA = opahttp.New(cfg.OPAAuthzURL, cfg.OPATimeout, logger).Health
	}
	if vaultStore != nil {
		health.Vault = vaultStore.Health
	}
	if kafkaBus, ok := bus.(*messaging.KafkaBus); ok {
		health.Kafka = kafkaBus.Ping
	}

	addr := normalizeAddr(cfg.HTTPPort)
	server := httpserver.New(httpserver.Options{
		Addr:        addr,
		APIPrefix:   cfg.APIPrefix,
		Users:       users,
		Templates:   templates,
		Deployments: deployments,
		Access:      access,
		Metrics:     metrics,
		Health:      health,
		Logger:      logger,
	})

	return &APIApp{
		server:      server,
		database:    database,
		bus:         bus,
		watchPolicy: access.WatchPolicy,
		stopTracing: stopTracing,
		addr:        addr,
		logger:      logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, "worker")

	database, err := db.Connect(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(deploysql.Models()...); err != nil {
		return nil, err
	}

	bus, err := newBus(cfg, logger)
	if err != nil {
		return nil, err
	}

	metrics := telemetry.NewMetrics()
	repo := deploysql.NewRepository(database.DB, logger)
	return &WorkerApp{
		database: database,
		bus:      bus,
		relay: deployworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: busPublisher{bus: bus},
			Metrics:   metrics,
			Clock:     deploysql.SystemClock{},
			BatchSize: cfg.OutboxRelayBatch,
			Logger:    logger,
		},
		metrics:      metrics,
		addr:         normalizeAddr(cfg.HTTPPort),
		pollInterval: cfg.OutboxRelayInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.watchPolicy != nil {
		go func() {
			if err := a.watchPolicy(ctx); err != nil {
				a.logger.Error("policy watcher stopped",
					"event", "policy_watcher_stopped",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}()
	}

	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"addr", a.addr,
	)

	srv := &http.Server{
		Addr:              a.addr,
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *APIApp) Close() error {
	var errs []error
	if a.stopTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.stopTracing(ctx))
		cancel()
	}
	if a.bus != nil {
		errs = append(errs, a.bus.Close())
	}
	if a.database != nil {
		errs = append(errs, a.database.Close())
	}
	return errors.Join(errs...)
}

// Run drains the outbox on a fixed cadence and exposes the relay
// counters on /metrics; the worker has no API surface of its own.
func (w *WorkerApp) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", w.metrics.Handler())
	mux.HandleFunc("GET /healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusNoContent)
	})
	srv := &http.Server{
		Addr:              w.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Error("worker metrics listener stopped",
				"event", "worker_metrics_listener_stopped",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()

	interval := w.pollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", interval.String(),
	)

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.bus != nil {
		errs = append(errs, w.bus.Close())
	}
	if w.database != nil {
		errs = append(errs, w.database.Close())
	}
	return errors.Join(errs...)
}

func newBus(cfg config.Config, logger *slog.Logger) (eventBus, error) {
	if !cfg.KafkaEnable {
		return messaging.NewInProcess(logger), nil
	}
	bus, err := messaging.NewKafkaBus(messaging.KafkaOptions{
		Brokers:         cfg.KafkaBrokers,
		TLSEnable:       cfg.KafkaSSLEnable,
		MaxMessageBytes: cfg.KafkaMaxRequestSize,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	return bus, nil
}

func newLogger(cfg config.Config, process string) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", cfg.ServiceName, "process", process)
}

func trustedIssuers(cfg config.Config) []accessports.TrustedIssuer {
	issuers := make([]accessports.TrustedIssuer, 0, len(cfg.TrustedIDPs))
	for _, idp := range cfg.TrustedIDPs {
		issuers = append(issuers, accessports.TrustedIssuer{
			Issuer:       idp.Issuer,
			ClientID:     idp.ClientID,
			ClientSecret: idp.ClientSecret,
		})
	}
	return issuers
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8000"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
