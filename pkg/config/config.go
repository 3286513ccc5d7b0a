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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Billing      BillingConfig
	Analytics    AnalyticsConfig
	Cron         CronConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
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
	if err := cfg.Billing.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FARMSTAY_APP_ENV" required:"true"`
	Port         string `envconfig:"FARMSTAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FARMSTAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FARMSTAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"FARMSTAY_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"FARMSTAY_DB_DSN"`
	Driver string `envconfig:"FARMSTAY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FARMSTAY_DB_HOST"`
	LegacyPort     int    `envconfig:"FARMSTAY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FARMSTAY_DB_USER"`
	LegacyPassword string `envconfig:"FARMSTAY_DB_PASSWORD"`
	LegacyName     string `envconfig:"FARMSTAY_DB_NAME"`
	LegacySSLMode  string `envconfig:"FARMSTAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FARMSTAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FARMSTAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FARMSTAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FARMSTAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: d.LegacyHost,
		EnvDBUser: d.LegacyUser,
		EnvDBName: d.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(d.LegacyUser)
	if d.LegacyPassword != "" {
		userInfo = url.UserPassword(d.LegacyUser, d.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}

	if d.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", d.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"FARMSTAY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FARMSTAY_REDIS_ADDR"`
	Password     string        `envconfig:"FARMSTAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"FARMSTAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FARMSTAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FARMSTAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FARMSTAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FARMSTAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FARMSTAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FARMSTAY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FARMSTAY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FARMSTAY_JWT_EXPIRATION_MINUTES" default:"720"`
}

// BillingConfig drives the lead-billing policy. LeadCost and the deactivation
// floor are whole currency units (INR).
type BillingConfig struct {
	LeadCost            int64 `envconfig:"FARMSTAY_BILLING_LEAD_COST" default:"40"`
	MinBalanceThreshold int64 `envconfig:"FARMSTAY_BILLING_MIN_BALANCE_THRESHOLD" default:"-500"`
}

// Validate rejects configurations under which the billing subsystem must not
// serve requests.
func (b BillingConfig) Validate() error {
	if b.LeadCost <= 0 {
		return fmt.Errorf("FARMSTAY_BILLING_LEAD_COST must be positive, got %d", b.LeadCost)
	}
	if b.MinBalanceThreshold > 0 {
		return fmt.Errorf("FARMSTAY_BILLING_MIN_BALANCE_THRESHOLD must be zero or negative, got %d", b.MinBalanceThreshold)
	}
	return nil
}

// AnalyticsConfig pins the business timezone used for day and month
// bucketing across the whole subsystem.
type AnalyticsConfig struct {
	Timezone string `envconfig:"FARMSTAY_ANALYTICS_TIMEZONE" default:"Asia/Kolkata"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"FARMSTAY_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"FARMSTAY_CRON_LOCK_TTL" default:"25h"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"FARMSTAY_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	ContactTopic string `envconfig:"FARMSTAY_PUBSUB_CONTACT_TOPIC" default:"fs-contact-events"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FARMSTAY_AUTO_MIGRATE" default:"false"`
}
