package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartsvc "github.com/sneakerscr/storefront-backend/internal/cart"
	checkoutsvc "github.com/sneakerscr/storefront-backend/internal/checkout"
	contactsvc "github.com/sneakerscr/storefront-backend/internal/contact"
	leadsvc "github.com/sneakerscr/storefront-backend/internal/leads"
	paymentsvc "github.com/sneakerscr/storefront-backend/internal/payments"
	productsvc "github.com/sneakerscr/storefront-backend/internal/products"
	"github.com/sneakerscr/storefront-backend/pkg/config"
	"github.com/sneakerscr/storefront-backend/pkg/db/models"
	"github.com/sneakerscr/storefront-backend/pkg/enums"
	"github.com/sneakerscr/storefront-backend/pkg/logger"
)

type routerHarness struct {
	handler http.Handler
	db      *gorm.DB
	product *models.Product
}

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Env: "dev"},
		Session:  config.SessionConfig{Secret: "router-test-secret", Issuer: "sneakerscr-storefront", TTLMinutes: 60},
		Checkout: config.CheckoutConfig{TaxRatePercent: "8", Coupons: "DEMO10:10,DEMO20:20", ShippingOptions: "free:Free Shipping:0:7-10|standard:Standard Shipping:10:5-7|express:Express Shipping:25:2-3"},
		Leads:    config.LeadsConfig{WhatsAppNumber: "50671508835"},
	}
}

func newHarness(t *testing.T) *routerHarness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{}, &models.Order{}, &models.OrderLineItem{}, &models.Lead{}, &models.Contact{},
	))

	sku := "AJ1-HIGH-85"
	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Air Jordan 1 High",
		Price:    decimal.RequireFromString("189.99"),
		Image:    "https://cdn.example.com/aj1.jpg",
		Brand:    "Jordan",
		Featured: true,
		SKU:      &sku,
		Kind:     enums.ProductKindPhysical,
	}
	require.NoError(t, conn.Create(product).Error)

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	productRepo := productsvc.NewRepository(conn)
	productService, err := productsvc.NewService(productRepo)
	require.NoError(t, err)

	cartService, err := cartsvc.NewService(cartsvc.NewMemoryStore(), productRepo)
	require.NoError(t, err)

	couponTable, err := cfg.Checkout.CouponTable()
	require.NoError(t, err)
	shippingTable, err := cfg.Checkout.ShippingTable()
	require.NoError(t, err)
	taxRate, err := cfg.Checkout.TaxRate()
	require.NoError(t, err)

	orderRepo := checkoutsvc.NewRepository(conn)
	checkoutService, err := checkoutsvc.NewService(
		cartService,
		orderRepo,
		checkoutsvc.NewCouponPolicy(couponTable),
		checkoutsvc.NewShippingPolicy(shippingTable),
		taxRate,
	)
	require.NoError(t, err)

	paymentService, err := paymentsvc.NewService(orderRepo, cartService, paymentsvc.NewStubHandler(), decimal.Zero, logg)
	require.NoError(t, err)

	leadService, err := leadsvc.NewService(leadsvc.NewRepository(conn), cfg.Leads.WhatsAppNumber)
	require.NoError(t, err)

	contactService, err := contactsvc.NewService(contactsvc.NewRepository(conn), "", nil, logg)
	require.NoError(t, err)

	handler := NewRouter(cfg, logg, nil, nil, prometheus.NewRegistry(), Services{
		Products: productService,
		Cart:     cartService,
		Checkout: checkoutService,
		Payments: paymentService,
		Leads:    leadService,
		Contact:  contactService,
	})

	return &routerHarness{handler: handler, db: conn, product: product}
}

func (h *routerHarness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func (h *routerHarness) mintSession(t *testing.T) string {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/api/public/session", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeData(t, rec)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthLive(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "dev", rec.Header().Get("X-Storefront-Env"))
}

func TestMetricsExposition(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodGet, "/health/live", "", nil)

	rec := h.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestPublicCatalog(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/public/products?brand=Jordan", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), "Air Jordan 1 High")

	rec = h.do(t, http.MethodGet, "/api/public/products/"+h.product.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/public/products/"+uuid.NewString(), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/public/brands", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Jordan")
}

func TestSessionRequiredForCart(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/v1/cart", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartCheckoutPaymentFlow(t *testing.T) {
	h := newHarness(t)
	token := h.mintSession(t)

	rec := h.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{
		"product_id": h.product.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decodeData(t, rec)
	require.EqualValues(t, 1, cart["item_count"])

	rec = h.do(t, http.MethodPost, "/api/v1/checkout/quote", token, map[string]any{
		"coupon_code":        "demo10",
		"shipping_option_id": "express",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPost, "/api/v1/checkout", token, map[string]any{
		"address": map[string]any{
			"first_name": "Ana",
			"last_name":  "Mora",
			"email":      "ana@example.com",
			"phone":      "+50688881234",
			"address":    "200m norte de la iglesia",
			"city":       "San José",
			"state":      "San José",
			"zip_code":   "10101",
			"country":    "Costa Rica",
		},
		"shipping_option_id": "standard",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decodeData(t, rec)
	orderID, _ := order["id"].(string)
	require.NotEmpty(t, orderID)
	require.Equal(t, string(enums.OrderStatusPending), order["status"])

	rec = h.do(t, http.MethodPost, "/api/v1/payments", token, map[string]any{
		"order_id": orderID,
		"method":   "manual",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	receipt := decodeData(t, rec)
	require.Equal(t, string(enums.OrderStatusPaid), receipt["status"])

	rec = h.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decodeData(t, rec)
	require.EqualValues(t, 0, cart["item_count"])
}

func TestCheckoutRejectsShortAddressFields(t *testing.T) {
	h := newHarness(t)
	token := h.mintSession(t)

	rec := h.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{
		"product_id": h.product.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPost, "/api/v1/checkout", token, map[string]any{
		"address": map[string]any{
			"first_name": "a",
			"last_name":  "b",
			"email":      "a@example.com",
			"phone":      "1",
			"address":    "x",
			"city":       "y",
			"state":      "z",
			"zip_code":   "1",
			"country":    "c",
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var orders int64
	require.NoError(t, h.db.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders, "truncated address must not create an order")
}

func TestPublicLeadCapture(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/public/leads", "", map[string]any{
		"product_id":   h.product.ID.String(),
		"product_name": "Air Jordan 1 High",
		"sku":          "AJ1-HIGH-85",
		"size":         "9.5",
		"price":        "189.99",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	lead := decodeData(t, rec)
	leadRef, _ := lead["lead_ref"].(string)
	require.True(t, strings.HasPrefix(leadRef, "SRC-"), "ref: %s", leadRef)
	whatsapp, _ := lead["whatsapp_url"].(string)
	require.Contains(t, whatsapp, "https://wa.me/50671508835")
}

func TestLeadShippingRequiresPlausibleFields(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/public/leads", "", map[string]any{
		"product_name": "Air Jordan 1 High",
		"price":        "189.99",
		"shipping": map[string]any{
			"first_name": "a",
			"last_name":  "b",
			"email":      "a@example.com",
			"phone":      "1",
			"address":    "x",
			"district":   "d",
			"canton":     "c",
			"province":   "p",
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var leads int64
	require.NoError(t, h.db.Model(&models.Lead{}).Count(&leads).Error)
	require.Zero(t, leads)
}

func TestPublicContactForm(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/api/public/contact", "", map[string]any{
		"name":    "Luis Rojas",
		"email":   "luis@example.com",
		"message": "¿Tienen la talla 11?",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var stored models.Contact
	require.NoError(t, h.db.First(&stored, "email = ?", "luis@example.com").Error)
	require.False(t, stored.Forwarded)
}

func TestLeadListRequiresSession(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api/v1/leads", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token := h.mintSession(t)
	rec = h.do(t, http.MethodGet, "/api/v1/leads", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
