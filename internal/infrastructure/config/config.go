package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Commerce CommerceConfig
	Redis    RedisConfig
	Store    StoreConfig
	Session  SessionConfig
	Cookie   CookieConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Payment  PaymentConfig
	Checkout CheckoutConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// CommerceConfig holds the upstream commerce API settings
type CommerceConfig struct {
	BaseURL        string
	Timeout        time.Duration
	AdminToken     string // service token for admin endpoints, optional
	MaxUploadBytes int64
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// StoreConfig holds the embedded fallback store settings
type StoreConfig struct {
	SQLitePath string
	SessionTTL time.Duration
}

// SessionConfig holds anonymous-session token settings
type SessionConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// CookieConfig holds session cookie settings
type CookieConfig struct {
	Name     string
	Domain   string
	Path     string
	Secure   bool
	SameSite string // "strict", "lax", or "none"
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
}

// PaymentConfig holds payment watcher settings
type PaymentConfig struct {
	PollInterval  time.Duration // status re-check while PENDING
	CountdownTick time.Duration // expiry countdown granularity
	SettleLinger  time.Duration // how long a settled watcher stays readable
}

// CheckoutConfig holds checkout flow settings
type CheckoutConfig struct {
	FlatShippingCost int64 // rupiah, placeholder until courier rates
	DraftTTL         time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g., STOREFRONT_SESSION_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Commerce: CommerceConfig{
			BaseURL:        v.GetString("commerce.base_url"),
			Timeout:        v.GetDuration("commerce.timeout"),
			AdminToken:     v.GetString("commerce.admin_token"),
			MaxUploadBytes: v.GetInt64("commerce.max_upload_bytes"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Enabled:  v.GetBool("redis.enabled"),
		},
		Store: StoreConfig{
			SQLitePath: v.GetString("store.sqlite_path"),
			SessionTTL: v.GetDuration("store.session_ttl"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			Expiration: v.GetDuration("session.expiration"),
			Issuer:     v.GetString("session.issuer"),
		},
		Cookie: CookieConfig{
			Name:     v.GetString("cookie.name"),
			Domain:   v.GetString("cookie.domain"),
			Path:     v.GetString("cookie.path"),
			Secure:   v.GetBool("cookie.secure"),
			SameSite: v.GetString("cookie.same_site"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
		},
		Payment: PaymentConfig{
			PollInterval:  v.GetDuration("payment.poll_interval"),
			CountdownTick: v.GetDuration("payment.countdown_tick"),
			SettleLinger:  v.GetDuration("payment.settle_linger"),
		},
		Checkout: CheckoutConfig{
			FlatShippingCost: v.GetInt64("checkout.flat_shipping_cost"),
			DraftTTL:         v.GetDuration("checkout.draft_ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront-gateway"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Commerce.BaseURL == "" {
		cfg.Commerce.BaseURL = "http://localhost:3000"
	}
	if cfg.Commerce.Timeout == 0 {
		cfg.Commerce.Timeout = 10 * time.Second
	}
	if cfg.Commerce.MaxUploadBytes == 0 {
		cfg.Commerce.MaxUploadBytes = 5 << 20 // 5MB
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "storefront.db"
	}
	if cfg.Store.SessionTTL == 0 {
		cfg.Store.SessionTTL = 720 * time.Hour // 30 days
	}
	if cfg.Session.Expiration == 0 {
		cfg.Session.Expiration = 720 * time.Hour
	}
	if cfg.Session.Issuer == "" {
		cfg.Session.Issuer = "storefront-gateway"
	}
	if cfg.Cookie.Name == "" {
		cfg.Cookie.Name = "storefront_session"
	}
	if cfg.Cookie.Path == "" {
		cfg.Cookie.Path = "/"
	}
	if cfg.Cookie.SameSite == "" {
		cfg.Cookie.SameSite = "lax"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// CORS origins get no wildcard fallback; an empty list means no
	// cross-origin requests until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Payment.PollInterval == 0 {
		cfg.Payment.PollInterval = 5 * time.Second
	}
	if cfg.Payment.CountdownTick == 0 {
		cfg.Payment.CountdownTick = time.Second
	}
	if cfg.Payment.SettleLinger == 0 {
		cfg.Payment.SettleLinger = 30 * time.Second
	}
	if cfg.Checkout.FlatShippingCost == 0 {
		cfg.Checkout.FlatShippingCost = 15000
	}
	if cfg.Checkout.DraftTTL == 0 {
		cfg.Checkout.DraftTTL = 24 * time.Hour
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Payment.PollInterval < time.Second {
		return fmt.Errorf("payment.poll_interval must be at least 1s")
	}
	if c.Payment.CountdownTick < time.Second {
		return fmt.Errorf("payment.countdown_tick must be at least 1s")
	}
	if c.Checkout.FlatShippingCost < 0 {
		return fmt.Errorf("checkout.flat_shipping_cost cannot be negative")
	}

	if c.App.Env == "production" {
		if c.Session.Secret == "" {
			return fmt.Errorf("session.secret is required in production")
		}
		if len(c.Session.Secret) < 32 {
			return fmt.Errorf("session.secret must be at least 32 characters in production")
		}
		if !c.Cookie.Secure {
			return fmt.Errorf("cookie.secure must be true in production (HTTPS required for secure cookies)")
		}
		if c.Cookie.SameSite == "none" && !c.Cookie.Secure {
			return fmt.Errorf("cookie.same_site=none requires cookie.secure=true")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// Addr returns the Redis connection address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
