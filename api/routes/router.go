package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sneakerscr/storefront-backend/api/controllers"
	"github.com/sneakerscr/storefront-backend/api/middleware"
	cartsvc "github.com/sneakerscr/storefront-backend/internal/cart"
	checkoutsvc "github.com/sneakerscr/storefront-backend/internal/checkout"
	contactsvc "github.com/sneakerscr/storefront-backend/internal/contact"
	leadsvc "github.com/sneakerscr/storefront-backend/internal/leads"
	paymentsvc "github.com/sneakerscr/storefront-backend/internal/payments"
	productsvc "github.com/sneakerscr/storefront-backend/internal/products"
	"github.com/sneakerscr/storefront-backend/pkg/config"
	"github.com/sneakerscr/storefront-backend/pkg/db"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
	"github.com/sneakerscr/storefront-backend/pkg/metrics"
	pkgredis "github.com/sneakerscr/storefront-backend/pkg/redis"
)

// Services bundles the storefront service surface wired into the router.
type Services struct {
	Products productsvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Payments paymentsvc.Service
	Leads    leadsvc.Service
	Contact  contactsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)

	// A typed nil would defeat the middleware's store guard.
	var idemStore pkgredis.IdempotencyStore
	var redisPinger pkgredis.Pinger
	var formLimiter pkgredis.RateLimiter
	if redisClient != nil {
		idemStore = redisClient
		redisPinger = redisClient
		formLimiter = redisClient
	}

	formPolicy := middleware.NewFormRateLimitPolicy(
		"forms",
		cfg.FormRateLimit.Window,
		cfg.FormRateLimit.IPLimit,
	)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		httpMetrics.Middleware,
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Post("/session", controllers.SessionCreate(cfg.Session, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, logg))
			r.Get("/{productId}", controllers.ProductDetail(svcs.Products, logg))
		})
		r.Get("/brands", controllers.ProductBrands(svcs.Products, logg))
		r.Get("/shipping-options", controllers.ShippingOptions(svcs.Checkout, logg))
		r.Get("/payment-methods", controllers.PaymentMethods(svcs.Payments, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.FormRateLimit(formPolicy, formLimiter, logg))
			r.Use(middleware.Idempotency(idemStore, logg))
			r.Post("/leads", controllers.LeadCreate(svcs.Leads, logg))
			r.Post("/contact", controllers.ContactCreate(svcs.Contact, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.Post("/checkout/quote", controllers.CheckoutQuote(svcs.Checkout, logg))
		r.Post("/checkout", controllers.CheckoutSubmit(svcs.Checkout, logg))
		r.Post("/coupons/validate", controllers.CouponValidate(svcs.Checkout, logg))

		r.Post("/payments", controllers.PaymentSubmit(svcs.Payments, logg))

		r.Get("/leads", controllers.LeadList(svcs.Leads, logg))
	})

	return r
}
