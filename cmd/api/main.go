package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sneakerscr/storefront-backend/api/routes"
	cartsvc "github.com/sneakerscr/storefront-backend/internal/cart"
	checkoutsvc "github.com/sneakerscr/storefront-backend/internal/checkout"
	contactsvc "github.com/sneakerscr/storefront-backend/internal/contact"
	leadsvc "github.com/sneakerscr/storefront-backend/internal/leads"
	paymentsvc "github.com/sneakerscr/storefront-backend/internal/payments"
	productsvc "github.com/sneakerscr/storefront-backend/internal/products"
	"github.com/sneakerscr/storefront-backend/pkg/config"
	"github.com/sneakerscr/storefront-backend/pkg/db"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
	"github.com/sneakerscr/storefront-backend/pkg/migrate"
	"github.com/sneakerscr/storefront-backend/pkg/redis"
	"github.com/sneakerscr/storefront-backend/pkg/square"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	productRepo := productsvc.NewRepository(dbClient.DB())
	productService, err := productsvc.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Session.TTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	couponTable, err := cfg.Checkout.CouponTable()
	if err != nil {
		logg.Error(context.Background(), "failed to parse coupon table", err)
		os.Exit(1)
	}
	shippingTable, err := cfg.Checkout.ShippingTable()
	if err != nil {
		logg.Error(context.Background(), "failed to parse shipping table", err)
		os.Exit(1)
	}
	taxRate, err := cfg.Checkout.TaxRate()
	if err != nil {
		logg.Error(context.Background(), "failed to parse tax rate", err)
		os.Exit(1)
	}

	orderRepo := checkoutsvc.NewRepository(dbClient.DB())
	checkoutService, err := checkoutsvc.NewService(
		cartService,
		orderRepo,
		checkoutsvc.NewCouponPolicy(couponTable),
		checkoutsvc.NewShippingPolicy(shippingTable),
		taxRate,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	walletBalance, err := cfg.Wallet.BalanceAmount()
	if err != nil {
		logg.Error(context.Background(), "failed to parse wallet balance", err)
		os.Exit(1)
	}

	paymentHandler, err := buildPaymentHandler(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment handler", err)
		os.Exit(1)
	}
	paymentService, err := paymentsvc.NewService(orderRepo, cartService, paymentHandler, walletBalance, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	leadService, err := leadsvc.NewService(leadsvc.NewRepository(dbClient.DB()), cfg.Leads.WhatsAppNumber)
	if err != nil {
		logg.Error(context.Background(), "failed to create lead service", err)
		os.Exit(1)
	}

	contactService, err := contactsvc.NewService(contactsvc.NewRepository(dbClient.DB()), cfg.Leads.ContactForwardURL, nil, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
			Products: productService,
			Cart:     cartService,
			Checkout: checkoutService,
			Payments: paymentService,
			Leads:    leadService,
			Contact:  contactService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildPaymentHandler wires the Square sandbox handler when credentials are
// present, otherwise the accept-all stub used for local demos.
func buildPaymentHandler(cfg *config.Config, logg *logger.Logger) (paymentsvc.Handler, error) {
	if cfg.Square.AccessToken == "" {
		logg.Warn(context.Background(), "square credentials missing, using stub payment handler")
		return paymentsvc.NewStubHandler(), nil
	}
	client, err := square.NewClient(context.Background(), cfg.Square, logg)
	if err != nil {
		return nil, err
	}
	return paymentsvc.NewSquareHandler(client)
}
