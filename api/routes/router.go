package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sarisaristore/sarisari-backend/api/controllers"
	"github.com/sarisaristore/sarisari-backend/api/middleware"
	cartsvc "github.com/sarisaristore/sarisari-backend/internal/cart"
	checkoutsvc "github.com/sarisaristore/sarisari-backend/internal/checkout"
	"github.com/sarisaristore/sarisari-backend/internal/inventory"
	productsvc "github.com/sarisaristore/sarisari-backend/internal/products"
	stocksvc "github.com/sarisaristore/sarisari-backend/internal/stock"
	"github.com/sarisaristore/sarisari-backend/pkg/config"
	"github.com/sarisaristore/sarisari-backend/pkg/db"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
	"github.com/sarisaristore/sarisari-backend/pkg/logger"
	"github.com/sarisaristore/sarisari-backend/pkg/metrics"
	"github.com/sarisaristore/sarisari-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	Products  productsvc.Service
	Stock     stocksvc.Service
	Inventory inventory.Service
	Cart      cartsvc.Service
	Checkout  checkoutsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var redisPinger redis.Pinger
	var idemStore redis.IdempotencyStore
	var limiter redis.RateLimiter
	if deps.Redis != nil {
		redisPinger = deps.Redis
		idemStore = deps.Redis
		limiter = deps.Redis
	}

	cartWritePolicy := middleware.NewRateLimitPolicy(
		"cart_writes",
		cfg.RateLimit.CartWriteWindow,
		cfg.RateLimit.CartWriteLimit,
	)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleAdmin), logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.Products, deps.Inventory, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
				r.Get("/{productId}", controllers.AdminGetProduct(deps.Products, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(deps.Products, logg))
				r.Get("/{productId}/stocks", controllers.AdminListStocks(deps.Stock, logg))
				r.Post("/{productId}/stocks", controllers.AdminAddStock(deps.Stock, logg))
			})
			r.Delete("/stocks/{stockId}", controllers.AdminDeleteStock(deps.Stock, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleCustomer), logg))

			r.Get("/storefront/products", controllers.StorefrontListProducts(deps.Products, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartList(deps.Cart, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RateLimit(cartWritePolicy, limiter, logg))
					r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
					r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.Cart, logg))
					r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Cart, logg))
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Idempotency(idemStore, cfg.Checkout.IdempotencyTTL, logg))
				r.Post("/checkout/quote", controllers.CheckoutQuote(deps.Checkout, logg))
			})
		})
	})

	return r
}
