package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/warungsunda-backend/api/controllers"
	"github.com/angelmondragon/warungsunda-backend/api/middleware"
	"github.com/angelmondragon/warungsunda-backend/internal/auth"
	"github.com/angelmondragon/warungsunda-backend/internal/checkout"
	"github.com/angelmondragon/warungsunda-backend/internal/inventory"
	"github.com/angelmondragon/warungsunda-backend/internal/menu"
	"github.com/angelmondragon/warungsunda-backend/internal/orders"
	"github.com/angelmondragon/warungsunda-backend/internal/wallet"
	"github.com/angelmondragon/warungsunda-backend/pkg/auth/session"
	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	"github.com/angelmondragon/warungsunda-backend/pkg/logger"
	"github.com/angelmondragon/warungsunda-backend/pkg/metrics"
)

// Deps carries everything the router hands to controllers. Redis, RateLimit
// and the metrics fields are optional.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Redis     controllers.Pinger
	RateLimit middleware.WindowLimiter
	Sessions  session.AccessSessionChecker
	Carts     controllers.CartProvider

	Auth      auth.Service
	Menu      menu.Service
	Checkout  checkout.Service
	Orders    orders.Service
	Wallet    wallet.Service
	Inventory inventory.Service

	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	requireAuth := middleware.Auth(cfg.JWT, d.Sessions, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, d.Sessions, logg)
	cookie := controllers.SessionCookie{Secure: cfg.Cart.SecureCookie}

	loginPolicy := middleware.AuthRateLimitPolicyFromConfig("login", cfg.RateLimit)
	registerPolicy := middleware.AuthRateLimitPolicyFromConfig("register", cfg.RateLimit)

	checks := []controllers.ReadinessCheck{{Name: "db", Pinger: d.DB}}
	if d.Redis != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Pinger: d.Redis})
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks...))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/menu", controllers.PublicMenuList(d.Menu, logg))
		r.Get("/menu/{itemId}", controllers.PublicMenuItem(d.Menu, logg))
		r.Get("/menu-link", controllers.PublicMenuLink(d.Checkout))
		r.Get("/menu-qr", controllers.PublicMenuQR(d.Checkout, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, d.RateLimit, logg)).Post("/login", controllers.AuthLogin(d.Auth, cookie, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, d.RateLimit, logg)).Post("/register", controllers.AuthRegister(d.Auth, cookie, logg))
			r.Post("/logout", controllers.AuthLogout(d.Auth, cookie, logg))
			r.With(requireAuth).Get("/me", controllers.AuthMe(d.Auth, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(d.Carts))
			r.Delete("/", controllers.CartClear(d.Carts))
			r.Post("/items", controllers.CartAddItem(d.Carts, d.Menu, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(d.Carts, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(d.Carts))
			r.Get("/quote", controllers.CartQuote(d.Carts, d.Checkout))
			r.Get("/qris", controllers.CartQRIS(d.Carts, d.Checkout, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/anonymous", controllers.AnonymousCheckout(d.Carts, d.Checkout, logg))
			r.With(requireAuth).Post("/", controllers.Checkout(d.Carts, d.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(optionalAuth).Get("/{orderId}", controllers.OrderGet(d.Orders, logg))
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", controllers.OrdersList(d.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.OrderCancel(d.Orders, logg))
			})
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", controllers.WalletGet(d.Wallet, logg))
			r.Post("/deposit", controllers.WalletDeposit(d.Wallet, logg))
			r.Post("/pay", controllers.WalletPay(d.Wallet, logg))
			r.Get("/transactions", controllers.WalletTransactions(d.Wallet, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireStaff(logg))
			r.Patch("/orders/{orderId}/status", controllers.AdminOrderStatus(d.Orders, logg))
			r.Post("/menu", controllers.AdminMenuCreate(d.Menu, logg))
			r.Put("/menu/{itemId}", controllers.AdminMenuReplace(d.Menu, logg))
			r.Patch("/menu/{itemId}/availability", controllers.AdminMenuAvailability(d.Menu, logg))
			r.Get("/inventory", controllers.AdminInventory(d.Inventory, logg))
		})
	})

	return r
}
