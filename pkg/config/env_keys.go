package config

// EnvPrefix is passed to envconfig.Process; individual fields carry full
// ESTIMATE_-prefixed names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "ESTIMATE_APP_ENV"
	EnvPort       = "ESTIMATE_APP_PORT"
	EnvDBDSN      = "ESTIMATE_DB_DSN"
	EnvDBHost     = "ESTIMATE_DB_HOST"
	EnvDBUser     = "ESTIMATE_DB_USER"
	EnvDBName     = "ESTIMATE_DB_NAME"
	EnvRedisURL   = "ESTIMATE_REDIS_URL"
	EnvJWTSecret  = "ESTIMATE_JWT_SECRET"
	EnvJWTIssuer  = "ESTIMATE_JWT_ISSUER"
	EnvJWTExpMins = "ESTIMATE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
