package config

// EnvPrefix scopes every FeatherMart environment variable.
const EnvPrefix = "FEATHERMART"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "FEATHERMART_APP_ENV"
	EnvPort       = "FEATHERMART_APP_PORT"
	EnvDBDSN      = "FEATHERMART_DB_DSN"
	EnvDBHost     = "FEATHERMART_DB_HOST"
	EnvDBUser     = "FEATHERMART_DB_USER"
	EnvDBName     = "FEATHERMART_DB_NAME"
	EnvRedisURL   = "FEATHERMART_REDIS_URL"
	EnvJWTSecret  = "FEATHERMART_JWT_SECRET"
	EnvJWTIssuer  = "FEATHERMART_JWT_ISSUER"
	EnvJWTExpMins = "FEATHERMART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
