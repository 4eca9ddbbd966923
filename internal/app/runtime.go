package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/hubkit/internal/catalog"
	"github.com/alexanderramin/hubkit/internal/config"
	"github.com/alexanderramin/hubkit/internal/demo"
	"github.com/alexanderramin/hubkit/internal/logging"
	"github.com/alexanderramin/hubkit/internal/metrics"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/alexanderramin/hubkit/internal/store"
	"go.uber.org/zap"
)

// Runtime owns the process-wide resources shared by one binary: logger,
// metrics, and the storage backend namespaced to the binary's name.
type Runtime struct {
	Name     string
	Config   config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Recorder
	KV       storage.KV
	Observer store.UseCaseObserver
}

// Start validates cfg and opens the runtime for the binary called name.
func Start(ctx context.Context, name string, cfg config.Config) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("app", name))

	opts := cfg.Storage()
	kv, err := storage.Open(ctx, opts)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("opening %s storage: %w", opts.Backend, err)
	}
	logger.Debug("storage opened", zap.String("backend", opts.Backend))

	rec := metrics.NewRecorder()
	return &Runtime{
		Name:     name,
		Config:   cfg,
		Logger:   logger,
		Metrics:  rec,
		KV:       storage.Prefixed(kv, name+":"),
		Observer: store.MultiObserver(logging.NewObserver(logger), rec),
	}, nil
}

// Close writes the metrics textfile when configured, closes storage and
// flushes the logger.
func (r *Runtime) Close() error {
	var errs []error
	if r.Config.MetricsFile != "" {
		errs = append(errs, r.Metrics.WriteTextfile(r.Config.MetricsFile))
	}
	if err := r.KV.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	// Sync on a terminal stderr fails with EINVAL on Linux; nothing to report.
	_ = r.Logger.Sync()
	return errors.Join(errs...)
}

// Shop holds the storefront use cases.
type Shop struct {
	Session  *store.AuthStore
	Cart     *store.CartStore
	Checkout *store.Checkout
	Catalog  *catalog.Catalog
	Notices  *store.NotificationRelay
}

// OpenShop loads the persisted user and cart and the embedded catalog.
func (r *Runtime) OpenShop(ctx context.Context) (*Shop, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	obs := store.WithObserver(r.Observer)

	session, err := store.OpenAuthStore(ctx, repository.NewKVUserRepo(r.KV), store.ShopRoles,
		obs, store.WithDelay(r.Config.AuthDelay()))
	if err != nil {
		return nil, err
	}
	cart, err := store.OpenCartStore(ctx, repository.NewKVCartRepo(r.KV), obs)
	if err != nil {
		return nil, err
	}
	notices := store.NewNotificationRelay(obs, store.WithTTL(r.Config.NotificationTTL()))
	checkout := store.NewCheckout(session, cart, repository.NewKVOrderRepo(r.KV), notices,
		obs, store.WithDelay(r.Config.CheckoutDelay()))

	return &Shop{Session: session, Cart: cart, Checkout: checkout, Catalog: cat, Notices: notices}, nil
}

// ProjectHub holds the project-management use cases.
type ProjectHub struct {
	Session  *store.AuthStore
	Projects *store.ProjectStore
	Notices  *store.NotificationRelay
}

// OpenProjectHub loads the persisted user and projects, seeding the demo
// projects on first run. The demo team signs in as itself.
func (r *Runtime) OpenProjectHub(ctx context.Context) (*ProjectHub, error) {
	obs := store.WithObserver(r.Observer)

	policy := store.ProjectRoles
	policy.Directory = demo.Users()
	session, err := store.OpenAuthStore(ctx, repository.NewKVUserRepo(r.KV), policy,
		obs, store.WithDelay(r.Config.AuthDelay()))
	if err != nil {
		return nil, err
	}
	projects, err := store.OpenProjectStore(ctx, repository.NewKVProjectRepo(r.KV), obs)
	if err != nil {
		return nil, err
	}
	notices := store.NewNotificationRelay(obs, store.WithTTL(r.Config.NotificationTTL()))
	return &ProjectHub{Session: session, Projects: projects, Notices: notices}, nil
}

var _ CatalogUseCase = (*catalog.Catalog)(nil)
