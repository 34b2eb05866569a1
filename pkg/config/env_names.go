package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names shared between Load, validation messages, and tests.
const (
	EnvAppEnv     = "PRICEWATCH_APP_ENV"
	EnvPort       = "PRICEWATCH_APP_PORT"
	EnvDBDSN      = "PRICEWATCH_DB_DSN"
	EnvDBHost     = "PRICEWATCH_DB_HOST"
	EnvDBUser     = "PRICEWATCH_DB_USER"
	EnvDBName     = "PRICEWATCH_DB_NAME"
	EnvRedisURL   = "PRICEWATCH_REDIS_URL"
	EnvJWTSecret  = "PRICEWATCH_JWT_SECRET"
	EnvJWTIssuer  = "PRICEWATCH_JWT_ISSUER"
	EnvJWTExpMins = "PRICEWATCH_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "PRICEWATCH_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
