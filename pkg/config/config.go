package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "storefront"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN = "STOREFRONT_DB_DSN"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Checkout     CheckoutConfig
	Wallet       WalletConfig
	Square       SquareConfig
	Leads         LeadsConfig
	FormRateLimit FormRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the anonymous browsing-session tokens that scope carts.
type SessionConfig struct {
	Secret     string `envconfig:"STOREFRONT_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"STOREFRONT_SESSION_ISSUER" default:"sneakerscr-storefront"`
	TTLMinutes int    `envconfig:"STOREFRONT_SESSION_TTL_MINUTES" default:"1440"`
}

// TTL returns the session lifetime. Carts stored under a session share it.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// CheckoutConfig carries the injected policy tables for the totals engine.
type CheckoutConfig struct {
	TaxRatePercent  string `envconfig:"STOREFRONT_CHECKOUT_TAX_RATE_PERCENT" default:"8"`
	Coupons         string `envconfig:"STOREFRONT_CHECKOUT_COUPONS" default:"DEMO10:10,DEMO20:20"`
	ShippingOptions string `envconfig:"STOREFRONT_CHECKOUT_SHIPPING_OPTIONS" default:"free:Free Shipping:0:7-10|standard:Standard Shipping:10:5-7|express:Express Shipping:25:2-3"`
}

// TaxRate parses the configured percentage into a decimal fraction (8 -> 0.08).
func (c CheckoutConfig) TaxRate() (decimal.Decimal, error) {
	pct, err := decimal.NewFromString(strings.TrimSpace(c.TaxRatePercent))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing tax rate %q: %w", c.TaxRatePercent, err)
	}
	if pct.IsNegative() {
		return decimal.Zero, fmt.Errorf("tax rate must be non-negative, got %s", pct)
	}
	return pct.Div(decimal.NewFromInt(100)), nil
}

// CouponTable parses the CODE:PERCENT pairs into an upper-cased lookup table.
func (c CheckoutConfig) CouponTable() (map[string]decimal.Decimal, error) {
	table := map[string]decimal.Decimal{}
	for _, pair := range strings.Split(c.Coupons, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid coupon entry %q (expected CODE:PERCENT)", pair)
		}
		code := strings.ToUpper(strings.TrimSpace(parts[0]))
		pct, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid coupon percent in %q: %w", pair, err)
		}
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("coupon percent out of range in %q", pair)
		}
		table[code] = pct.Div(decimal.NewFromInt(100))
	}
	return table, nil
}

// ShippingOption is one entry of the fixed, externally supplied shipping table.
type ShippingOption struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	EstimatedDays string
}

// ShippingTable parses ID:NAME:PRICE:DAYS entries. Order is preserved; the
// first entry is the default selection.
func (c CheckoutConfig) ShippingTable() ([]ShippingOption, error) {
	var options []ShippingOption
	for _, entry := range strings.Split(c.ShippingOptions, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid shipping entry %q (expected ID:NAME:PRICE:DAYS)", entry)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid shipping price in %q: %w", entry, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("shipping price must be non-negative in %q", entry)
		}
		options = append(options, ShippingOption{
			ID:            strings.TrimSpace(parts[0]),
			Name:          strings.TrimSpace(parts[1]),
			Price:         price,
			EstimatedDays: strings.TrimSpace(parts[3]),
		})
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("shipping table must contain at least one option")
	}
	return options, nil
}

// WalletConfig mocks the store-credit balance surfaced at payment time.
type WalletConfig struct {
	Balance string `envconfig:"STOREFRONT_WALLET_BALANCE" default:"0"`
}

func (w WalletConfig) BalanceAmount() (decimal.Decimal, error) {
	bal, err := decimal.NewFromString(strings.TrimSpace(w.Balance))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing wallet balance %q: %w", w.Balance, err)
	}
	if bal.IsNegative() {
		return decimal.Zero, fmt.Errorf("wallet balance must be non-negative, got %s", bal)
	}
	return bal, nil
}

type SquareConfig struct {
	AccessToken string `envconfig:"STOREFRONT_SQUARE_ACCESS_TOKEN"`
	Environment string `envconfig:"STOREFRONT_SQUARE_ENV" default:"sandbox"`
	LocationID  string `envconfig:"STOREFRONT_SQUARE_LOCATION_ID"`
}

type LeadsConfig struct {
	WhatsAppNumber    string `envconfig:"STOREFRONT_LEADS_WHATSAPP_NUMBER" default:"50687654321"`
	ContactForwardURL string `envconfig:"STOREFRONT_LEADS_CONTACT_FORWARD_URL"`
}

// FormRateLimitConfig throttles the anonymous lead and contact forms per IP.
type FormRateLimitConfig struct {
	Window  time.Duration `envconfig:"STOREFRONT_FORM_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"STOREFRONT_FORM_RATE_LIMIT_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	required := map[string]string{
		"STOREFRONT_DB_HOST": db.LegacyHost,
		"STOREFRONT_DB_USER": db.LegacyUser,
		"STOREFRONT_DB_NAME": db.LegacyName,
	}
	var missing []string
	for env, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
