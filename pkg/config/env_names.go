package config

// EnvPrefix namespaces all environment variables read by Load.
const EnvPrefix = "luxe"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "LUXE_APP_ENV"
	EnvPort       = "LUXE_APP_PORT"
	EnvDBDSN      = "LUXE_DB_DSN"
	EnvDBHost     = "LUXE_DB_HOST"
	EnvDBUser     = "LUXE_DB_USER"
	EnvDBName     = "LUXE_DB_NAME"
	EnvRedisURL   = "LUXE_REDIS_URL"
	EnvJWTSecret  = "LUXE_JWT_SECRET"
	EnvJWTIssuer  = "LUXE_JWT_ISSUER"
	EnvJWTExpMins = "LUXE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
