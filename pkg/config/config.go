package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Stripe       StripeConfig
	Storefront   StorefrontConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"URBANTHREADS_APP_ENV" required:"true"`
	Port         string `envconfig:"URBANTHREADS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"URBANTHREADS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"URBANTHREADS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"URBANTHREADS_DB_DSN"`
	Driver string `envconfig:"URBANTHREADS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"URBANTHREADS_DB_HOST"`
	Port     int    `envconfig:"URBANTHREADS_DB_PORT" default:"5432"`
	User     string `envconfig:"URBANTHREADS_DB_USER"`
	Password string `envconfig:"URBANTHREADS_DB_PASSWORD"`
	Name     string `envconfig:"URBANTHREADS_DB_NAME"`
	SSLMode  string `envconfig:"URBANTHREADS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"URBANTHREADS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"URBANTHREADS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"URBANTHREADS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"URBANTHREADS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(d.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"URBANTHREADS_REDIS_URL"`
	Address      string        `envconfig:"URBANTHREADS_REDIS_ADDR"`
	Password     string        `envconfig:"URBANTHREADS_REDIS_PASSWORD"`
	DB           int           `envconfig:"URBANTHREADS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"URBANTHREADS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"URBANTHREADS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"URBANTHREADS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"URBANTHREADS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"URBANTHREADS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey string `envconfig:"URBANTHREADS_STRIPE_API_KEY"`
	Secret string `envconfig:"URBANTHREADS_STRIPE_WEBHOOK_SECRET"`
	Env    string `envconfig:"URBANTHREADS_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

// StorefrontConfig carries the single frontend-facing deployment knob: where
// the commerce API lives.
type StorefrontConfig struct {
	BackendBaseURL  string        `envconfig:"URBANTHREADS_BACKEND_BASE_URL"`
	SessionCookie   string        `envconfig:"URBANTHREADS_SESSION_COOKIE" default:"ut_session"`
	CartIdleTTL     time.Duration `envconfig:"URBANTHREADS_CART_IDLE_TTL" default:"24h"`
	CartPruneEvery  time.Duration `envconfig:"URBANTHREADS_CART_PRUNE_INTERVAL" default:"1h"`
	PollAttempts    int           `envconfig:"URBANTHREADS_POLL_ATTEMPTS" default:"5"`
	PollInterval    time.Duration `envconfig:"URBANTHREADS_POLL_INTERVAL" default:"2s"`
	UpstreamTimeout time.Duration `envconfig:"URBANTHREADS_UPSTREAM_TIMEOUT" default:"10s"`
}

// CatalogConfig carries the proxy-facing deployment knob: where the upstream
// catalog API lives.
type CatalogConfig struct {
	UpstreamBaseURL string   `envconfig:"URBANTHREADS_CATALOG_UPSTREAM_URL"`
	AllowedOrigins  []string `envconfig:"URBANTHREADS_ALLOWED_ORIGINS"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"URBANTHREADS_AUTO_MIGRATE" default:"false"`
	SeedProducts bool `envconfig:"URBANTHREADS_SEED_PRODUCTS" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:urbanthreads.db?cache=shared"
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
