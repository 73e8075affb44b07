package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urbanthreads/storefront-backend/api/controllers"
	webhookcontrollers "github.com/urbanthreads/storefront-backend/api/controllers/webhooks"
	"github.com/urbanthreads/storefront-backend/api/middleware"
	customordersvc "github.com/urbanthreads/storefront-backend/internal/customorders"
	newslettersvc "github.com/urbanthreads/storefront-backend/internal/newsletter"
	ordersvc "github.com/urbanthreads/storefront-backend/internal/orders"
	paymentsvc "github.com/urbanthreads/storefront-backend/internal/payments"
	productsvc "github.com/urbanthreads/storefront-backend/internal/products"
	"github.com/urbanthreads/storefront-backend/pkg/config"
	"github.com/urbanthreads/storefront-backend/pkg/logger"
	"github.com/urbanthreads/storefront-backend/pkg/metrics"
	pkgredis "github.com/urbanthreads/storefront-backend/pkg/redis"
	"github.com/urbanthreads/storefront-backend/pkg/stripe"
)

// APIDeps carries everything the commerce API router wires together.
type APIDeps struct {
	Config       *config.Config
	Logger       *logger.Logger
	Readiness    map[string]controllers.Pinger
	Idempotency  pkgredis.IdempotencyStore
	HTTPMetrics  *metrics.HTTPMetrics
	Registry     *prometheus.Registry
	StripeClient *stripe.Client

	Products     productsvc.Service
	Orders       ordersvc.Service
	Payments     paymentsvc.Service
	Newsletter   newslettersvc.Service
	CustomOrders customordersvc.Service
}

// NewAPIRouter assembles the commerce API surface.
func NewAPIRouter(deps APIDeps) http.Handler {
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

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.Idempotency, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/category/{category}", controllers.ListProductsByCategory(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/create-session", controllers.CreateCheckoutSession(deps.Payments, logg))
			r.Get("/status/{sessionId}", controllers.CheckoutSessionStatus(deps.Payments, logg))
		})

		r.Post("/webhook/stripe", webhookcontrollers.StripeWebhook(deps.Payments, deps.StripeClient, logg))

		r.Route("/custom-orders", func(r chi.Router) {
			r.Post("/", controllers.CreateCustomOrder(deps.CustomOrders, logg))
			r.Get("/", controllers.ListCustomOrders(deps.CustomOrders, logg))
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/subscribe", controllers.SubscribeNewsletter(deps.Newsletter, logg))
			r.Get("/subscribers", controllers.ListNewsletterSubscribers(deps.Newsletter, logg))
		})
	})

	return r
}
