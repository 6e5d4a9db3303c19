package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "USERPOWER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "USERPOWER_APP_ENV"
	EnvPort       = "USERPOWER_APP_PORT"
	EnvDBDSN      = "USERPOWER_DB_DSN"
	EnvDBHost     = "USERPOWER_DB_HOST"
	EnvDBUser     = "USERPOWER_DB_USER"
	EnvDBName     = "USERPOWER_DB_NAME"
	EnvJWTSecret  = "USERPOWER_JWT_SECRET"
	EnvJWTIssuer  = "USERPOWER_JWT_ISSUER"
	EnvJWTExpMins = "USERPOWER_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
