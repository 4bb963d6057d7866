package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/sokolink/sokolink-app/pkg/enums"
)

type Config struct {
	App      AppConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Catalog  CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOKOLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"SOKOLINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOKOLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOKOLINK_LOG_WARN_STACK" default:"false"`
	DemoData     bool   `envconfig:"SOKOLINK_DEMO_DATA" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SeedDemoData reports whether the in-memory stores should boot with the
// demo catalogue cart and order history.
func (a AppConfig) SeedDemoData() bool {
	return a.DemoData || a.IsDev()
}

type SessionConfig struct {
	JWTSecret         string `envconfig:"SOKOLINK_JWT_SECRET" required:"true"`
	JWTIssuer         string `envconfig:"SOKOLINK_JWT_ISSUER" default:"sokolink"`
	ExpirationMinutes int    `envconfig:"SOKOLINK_JWT_EXPIRATION_MINUTES" default:"1440"`

	// PostLoginPage is where the router lands a user when a session appears
	// while they sit on login or register.
	PostLoginPage string `envconfig:"SOKOLINK_POST_LOGIN_PAGE" default:"onboarding"`
}

// TokenTTL returns the session token lifetime.
func (s SessionConfig) TokenTTL() time.Duration {
	return time.Duration(s.ExpirationMinutes) * time.Minute
}

// PostLogin returns the configured post-login landing page.
func (s SessionConfig) PostLogin() enums.Page {
	page, err := enums.ParsePage(s.PostLoginPage)
	if err != nil {
		return enums.PageOnboarding
	}
	return page
}

func (s SessionConfig) validate() error {
	if s.ExpirationMinutes <= 0 {
		return fmt.Errorf("session expiration minutes must be positive")
	}
	if _, err := enums.ParsePage(s.PostLoginPage); err != nil {
		return fmt.Errorf("invalid post-login page: %w", err)
	}
	return nil
}

type CheckoutConfig struct {
	// DeliveryFee is the flat delivery charge in Fbu applied to non-empty carts.
	DeliveryFee        int           `envconfig:"SOKOLINK_DELIVERY_FEE" default:"2000"`
	PaymentDelay       time.Duration `envconfig:"SOKOLINK_PAYMENT_DELAY" default:"2s"`
	PaymentFailureRate float64       `envconfig:"SOKOLINK_PAYMENT_FAILURE_RATE" default:"0"`
}

func (c CheckoutConfig) validate() error {
	if c.DeliveryFee < 0 {
		return fmt.Errorf("delivery fee must be non-negative")
	}
	if c.PaymentDelay < 0 {
		return fmt.Errorf("payment delay must be non-negative")
	}
	if c.PaymentFailureRate < 0 || c.PaymentFailureRate > 1 {
		return fmt.Errorf("payment failure rate must be within [0,1]")
	}
	return nil
}

type CatalogConfig struct {
	FeaturedCount int `envconfig:"SOKOLINK_CATALOG_FEATURED_COUNT" default:"4"`
}
