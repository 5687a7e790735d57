package config

const EnvPrefix = "WARUNG"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	CartBackendCookie = "cookie"
	CartBackendRedis  = "redis"
	CartBackendMemory = "memory"
)

const (
	EnvAppEnv         = "WARUNG_APP_ENV"
	EnvPort           = "WARUNG_APP_PORT"
	EnvPublicURL      = "WARUNG_PUBLIC_URL"
	EnvLogLevel       = "WARUNG_LOG_LEVEL"
	EnvDBDriver       = "WARUNG_DB_DRIVER"
	EnvDBDSN          = "WARUNG_DB_DSN"
	EnvRedisURL       = "WARUNG_REDIS_URL"
	EnvJWTSecret      = "WARUNG_JWT_SECRET"
	EnvJWTExpMins     = "WARUNG_JWT_EXPIRATION_MINUTES"
	EnvCartBackend    = "WARUNG_CART_BACKEND"
	EnvCartTTL        = "WARUNG_CART_TTL"
	EnvCheckoutTaxBPS = "WARUNG_CHECKOUT_TAX_BPS"
	EnvGatewayDelay   = "WARUNG_CHECKOUT_GATEWAY_DELAY"
	EnvSeedFixtures   = "WARUNG_SEED_FIXTURES"
)
