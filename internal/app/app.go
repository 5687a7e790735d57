// Package app assembles the services behind the HTTP router.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/warungsunda-backend/api/routes"
	"github.com/angelmondragon/warungsunda-backend/internal/auth"
	"github.com/angelmondragon/warungsunda-backend/internal/cart"
	"github.com/angelmondragon/warungsunda-backend/internal/checkout"
	"github.com/angelmondragon/warungsunda-backend/internal/fixtures"
	"github.com/angelmondragon/warungsunda-backend/internal/inventory"
	"github.com/angelmondragon/warungsunda-backend/internal/ledger"
	"github.com/angelmondragon/warungsunda-backend/internal/menu"
	"github.com/angelmondragon/warungsunda-backend/internal/orders"
	"github.com/angelmondragon/warungsunda-backend/internal/payment"
	"github.com/angelmondragon/warungsunda-backend/internal/users"
	"github.com/angelmondragon/warungsunda-backend/internal/wallet"
	"github.com/angelmondragon/warungsunda-backend/pkg/auth/session"
	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	"github.com/angelmondragon/warungsunda-backend/pkg/db"
	"github.com/angelmondragon/warungsunda-backend/pkg/ids"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
	"github.com/angelmondragon/warungsunda-backend/pkg/redis"
	"github.com/angelmondragon/warungsunda-backend/pkg/security"
)

// Options are the process-level resources shared by every service.
type Options struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client // nil when no Redis URL is configured
	Registry *prometheus.Registry
	IDs      ids.Generator
	Clock    func() time.Time
}

// Build wires repositories and services and returns the router dependencies.
func Build(opts Options) (routes.Deps, error) {
	if opts.Config == nil {
		return routes.Deps{}, fmt.Errorf("config required")
	}
	if opts.DB == nil {
		return routes.Deps{}, fmt.Errorf("database client required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.IDs == nil {
		opts.IDs = ids.UUIDGenerator{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	cfg, logg, conn := opts.Config, opts.Logger, opts.DB.DB()

	checkoutMetrics := metrics.NewCheckoutMetrics(opts.Registry)
	httpMetrics := metrics.NewHTTPMetrics(opts.Registry)

	userRepo := users.NewRepository(conn)
	menuRepo := menu.NewRepository(conn)

	menuSvc, err := menu.NewService(menuRepo, opts.IDs, logg)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("menu service: %w", err)
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(conn))
	if err != nil {
		return routes.Deps{}, fmt.Errorf("inventory service: %w", err)
	}
	ledgerSvc, err := ledger.NewService(ledger.NewRepository(conn), opts.IDs, opts.Clock)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("ledger service: %w", err)
	}
	walletSvc, err := wallet.NewService(userRepo, ledgerSvc, opts.DB, checkoutMetrics, logg)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("wallet service: %w", err)
	}
	orderRepo := orders.NewRepository(conn)
	ordersSvc, err := orders.NewService(orderRepo, opts.DB, walletSvc, checkoutMetrics, logg, opts.Clock)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("orders service: %w", err)
	}

	checkoutSvc, err := checkout.NewService(checkout.Deps{
		Tx:       opts.DB,
		Orders:   orderRepo,
		Users:    userRepo,
		Wallet:   walletSvc,
		Gateways: payment.NewDefaultRegistry(cfg.Checkout.GatewayDelay, cfg.Checkout.GatewayTimeout, checkoutMetrics),
		Menu:     menuRepo,
		IDs:      opts.IDs,
		Config:   cfg.Checkout,
		Metrics:  checkoutMetrics,
		Logger:   logg,
		Clock:    opts.Clock,
	})
	if err != nil {
		return routes.Deps{}, fmt.Errorf("checkout service: %w", err)
	}

	sessions, err := newSessionManager(cfg, opts.Redis)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("session manager: %w", err)
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessions,
		Hasher:         security.NewHasher(cfg.Password),
		IDs:            opts.IDs,
		JWTConfig:      cfg.JWT,
		Logger:         logg,
		Clock:          opts.Clock,
	})
	if err != nil {
		return routes.Deps{}, fmt.Errorf("auth service: %w", err)
	}

	cartCfg := cfg.Cart
	if cartCfg.SigningKey == "" {
		cartCfg.SigningKey = cfg.JWT.Secret
	}
	carts, err := cart.NewFactory(cartCfg, cartKV(cfg, opts.Redis), logg)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("cart factory: %w", err)
	}

	deps := routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          opts.DB,
		Sessions:    sessions,
		Carts:       carts,
		Auth:        authSvc,
		Menu:        menuSvc,
		Checkout:    checkoutSvc,
		Orders:      ordersSvc,
		Wallet:      walletSvc,
		Inventory:   inventorySvc,
		HTTPMetrics: httpMetrics,
		Gatherer:    opts.Registry,
	}
	if opts.Redis != nil {
		deps.Redis = opts.Redis
		deps.RateLimit = opts.Redis
	}
	return deps, nil
}

// Seed loads the demo users, menu, orders and inventory when the flag is on.
func Seed(ctx context.Context, opts Options) error {
	if opts.Config == nil || !opts.Config.FeatureFlags.SeedFixtures {
		return nil
	}
	seeder, err := fixtures.NewSeeder(opts.DB.DB(), security.NewHasher(opts.Config.Password), opts.Logger)
	if err != nil {
		return err
	}
	return seeder.Seed(ctx)
}

func newSessionManager(cfg *config.Config, client *redis.Client) (*session.Manager, error) {
	if client != nil {
		return session.NewManager(client, cfg.JWT.TTL())
	}
	return session.NewMemoryManager(cfg.JWT.TTL())
}

func cartKV(cfg *config.Config, client *redis.Client) cart.KV {
	switch cfg.Cart.Backend {
	case config.CartBackendRedis:
		if client != nil {
			return client
		}
	case config.CartBackendMemory:
		return cart.NewMemoryKV()
	}
	return nil
}
