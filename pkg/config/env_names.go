package config

// EnvPrefix namespaces every FarmStay environment variable.
const EnvPrefix = "farmstay"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error
// messages).
const (
	EnvAppEnv   = "FARMSTAY_APP_ENV"
	EnvPort     = "FARMSTAY_APP_PORT"
	EnvDBDSN    = "FARMSTAY_DB_DSN"
	EnvDBHost   = "FARMSTAY_DB_HOST"
	EnvDBUser   = "FARMSTAY_DB_USER"
	EnvDBName   = "FARMSTAY_DB_NAME"
	EnvRedisURL = "FARMSTAY_REDIS_URL"

	EnvJWTSecret  = "FARMSTAY_JWT_SECRET"
	EnvJWTIssuer  = "FARMSTAY_JWT_ISSUER"
	EnvJWTExpMins = "FARMSTAY_JWT_EXPIRATION_MINUTES"

	EnvBillingLeadCost  = "FARMSTAY_BILLING_LEAD_COST"
	EnvBillingThreshold = "FARMSTAY_BILLING_MIN_BALANCE_THRESHOLD"
	EnvAnalyticsTZ      = "FARMSTAY_ANALYTICS_TIMEZONE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
