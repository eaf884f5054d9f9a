package config

// EnvPrefix is the envconfig prefix shared by every section.
const EnvPrefix = "PASARLOKAL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error
// messages). Keep in sync with the envconfig tags in config.go.
const (
	EnvAppEnv     = "PASARLOKAL_APP_ENV"
	EnvPort       = "PASARLOKAL_APP_PORT"
	EnvDBDSN      = "PASARLOKAL_DB_DSN"
	EnvDBHost     = "PASARLOKAL_DB_HOST"
	EnvDBUser     = "PASARLOKAL_DB_USER"
	EnvDBName     = "PASARLOKAL_DB_NAME"
	EnvRedisURL   = "PASARLOKAL_REDIS_URL"
	EnvJWTSecret  = "PASARLOKAL_JWT_SECRET"
	EnvJWTIssuer  = "PASARLOKAL_JWT_ISSUER"
	EnvJWTExpMins = "PASARLOKAL_JWT_EXPIRATION_MINUTES"

	EnvGCPProjectID    = "PASARLOKAL_GCP_PROJECT_ID"
	EnvPubSubEventsTopic = "PASARLOKAL_PUBSUB_EVENTS_TOPIC"
	EnvPubSubEventsSub   = "PASARLOKAL_PUBSUB_EVENTS_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
