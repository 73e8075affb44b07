package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urbanthreads/storefront-backend/api/controllers"
	"github.com/urbanthreads/storefront-backend/api/controllers/storefront"
	"github.com/urbanthreads/storefront-backend/api/middleware"
	"github.com/urbanthreads/storefront-backend/pkg/config"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
	"github.com/urbanthreads/storefront-backend/pkg/metrics"
)

// StorefrontDeps carries everything the shopper-facing router wires together.
type StorefrontDeps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Readiness   map[string]controllers.Pinger
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Carts      storefront.CartProvider
	Checkout   storefront.CheckoutInitiator
	Poller     storefront.StatusPoller
	Catalog    storefront.CatalogQuerier
	Newsletter storefront.NewsletterSubscriber
}

// NewStorefrontRouter assembles the shopper-facing surface. Every cart and
// checkout route runs behind the session cookie middleware.
func NewStorefrontRouter(deps StorefrontDeps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.Catalog.AllowedOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/products", storefront.ListCatalog(deps.Catalog, logg))
	r.Get("/products/{productId}", storefront.GetCatalogProduct(deps.Catalog, logg))
	r.Post("/newsletter", storefront.SubscribeNewsletter(deps.Newsletter, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.CartSession(cfg.Storefront.SessionCookie, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", storefront.GetCart(deps.Carts, logg))
			r.Delete("/", storefront.ClearCart(deps.Carts, logg))
			r.Post("/items", storefront.AddCartItem(deps.Carts, logg))
			r.Patch("/items/{productId}", storefront.UpdateCartItem(deps.Carts, logg))
			r.Delete("/items/{productId}", storefront.RemoveCartItem(deps.Carts, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", storefront.BeginCheckout(deps.Checkout, deps.Carts, logg))
			r.Get("/return", storefront.CheckoutReturn(deps.Poller, logg))
		})
	})

	return r
}
