package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.DB.Driver) {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("%s must be one of %s|%s, got %q", EnvDBDriver, DBDriverSQLite, DBDriverPostgres, c.DB.Driver)
	}
	if strings.EqualFold(c.DB.Driver, DBDriverPostgres) && c.DB.DSN == "" {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DBDriverPostgres)
	}
	switch c.Cart.Backend {
	case CartBackendCookie, CartBackendMemory:
	case CartBackendRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("%s is required when %s=%s", EnvRedisURL, EnvCartBackend, CartBackendRedis)
		}
	default:
		return fmt.Errorf("invalid cart backend %q", c.Cart.Backend)
	}
	if c.Cart.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvCartTTL)
	}
	if c.Checkout.TaxBasisPoints < 0 {
		return fmt.Errorf("%s cannot be negative", EnvCheckoutTaxBPS)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"WARUNG_APP_ENV" default:"dev"`
	Port         string `envconfig:"WARUNG_APP_PORT" default:"8080"`
	PublicURL    string `envconfig:"WARUNG_PUBLIC_URL" default:"http://localhost:8080"`
	LogLevel     string `envconfig:"WARUNG_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"WARUNG_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"WARUNG_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"WARUNG_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"WARUNG_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"WARUNG_DB_DSN" default:"file:warung?mode=memory&cache=shared"`

	MaxOpenConns    int           `envconfig:"WARUNG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WARUNG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WARUNG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WARUNG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the mock (sqlite) backend is configured.
func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(d.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"WARUNG_REDIS_URL"`
	PoolSize     int           `envconfig:"WARUNG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WARUNG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WARUNG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WARUNG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WARUNG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"WARUNG_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WARUNG_JWT_ISSUER" default:"warung-sunda"`
	ExpirationMinutes int    `envconfig:"WARUNG_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TTL returns the session token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WARUNG_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WARUNG_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WARUNG_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WARUNG_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WARUNG_ARGON_KEY_LEN" default:"32"`
}

type CartConfig struct {
	Backend       string        `envconfig:"WARUNG_CART_BACKEND" default:"cookie"`
	CookieName    string        `envconfig:"WARUNG_CART_COOKIE_NAME" default:"warung_sunda_cart"`
	SessionCookie string        `envconfig:"WARUNG_CART_SESSION_COOKIE" default:"warung_sunda_cart_sid"`
	TTL           time.Duration `envconfig:"WARUNG_CART_TTL" default:"168h"`
	SecureCookie  bool          `envconfig:"WARUNG_CART_SECURE_COOKIE" default:"false"`
	// SigningKey signs cookie carts. Empty falls back to the JWT secret.
	SigningKey string `envconfig:"WARUNG_CART_SIGNING_KEY"`
}

type CheckoutConfig struct {
	ReadyOffset    time.Duration `envconfig:"WARUNG_CHECKOUT_READY_OFFSET" default:"15m"`
	TaxBasisPoints int           `envconfig:"WARUNG_CHECKOUT_TAX_BPS" default:"500"`
	GatewayDelay   time.Duration `envconfig:"WARUNG_CHECKOUT_GATEWAY_DELAY" default:"3s"`
	GatewayTimeout time.Duration `envconfig:"WARUNG_CHECKOUT_GATEWAY_TIMEOUT" default:"10s"`
	MenuURL        string        `envconfig:"WARUNG_CHECKOUT_MENU_URL" default:"http://localhost:8080/menu"`
	MerchantName   string        `envconfig:"WARUNG_CHECKOUT_MERCHANT_NAME" default:"Warung Sunda"`
}

// RateLimitConfig throttles the login and register endpoints. Counters live in
// Redis, so the limits only apply when a Redis URL is configured.
type RateLimitConfig struct {
	AuthWindow     time.Duration `envconfig:"WARUNG_AUTH_RATE_WINDOW" default:"1m"`
	AuthIPLimit    int           `envconfig:"WARUNG_AUTH_RATE_IP_LIMIT" default:"20"`
	AuthEmailLimit int           `envconfig:"WARUNG_AUTH_RATE_EMAIL_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	SeedFixtures bool `envconfig:"WARUNG_SEED_FIXTURES" default:"true"`
	AutoMigrate  bool `envconfig:"WARUNG_AUTO_MIGRATE" default:"true"`
}
