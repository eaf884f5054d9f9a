package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	SeedAdmin     SeedAdminConfig
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
	Env          string `envconfig:"PASARLOKAL_APP_ENV" required:"true"`
	Port         string `envconfig:"PASARLOKAL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PASARLOKAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PASARLOKAL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PASARLOKAL_DB_DSN"`
	Driver string `envconfig:"PASARLOKAL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PASARLOKAL_DB_HOST"`
	LegacyPort     int    `envconfig:"PASARLOKAL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PASARLOKAL_DB_USER"`
	LegacyPassword string `envconfig:"PASARLOKAL_DB_PASSWORD"`
	LegacyName     string `envconfig:"PASARLOKAL_DB_NAME"`
	LegacySSLMode  string `envconfig:"PASARLOKAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PASARLOKAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PASARLOKAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PASARLOKAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PASARLOKAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PASARLOKAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PASARLOKAL_REDIS_ADDR"`
	Password     string        `envconfig:"PASARLOKAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"PASARLOKAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PASARLOKAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PASARLOKAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PASARLOKAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PASARLOKAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PASARLOKAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PASARLOKAL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PASARLOKAL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PASARLOKAL_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PASARLOKAL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PASARLOKAL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PASARLOKAL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PASARLOKAL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PASARLOKAL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PASARLOKAL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PASARLOKAL_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PASARLOKAL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PASARLOKAL_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PASARLOKAL_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PASARLOKAL_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PASARLOKAL_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"PASARLOKAL_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	EventsTopic        string `envconfig:"PASARLOKAL_PUBSUB_EVENTS_TOPIC" default:"pl-domain-events"`
	EventsSubscription string `envconfig:"PASARLOKAL_PUBSUB_EVENTS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"PASARLOKAL_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"PASARLOKAL_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"PASARLOKAL_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// SeedAdminConfig describes the bootstrap admin account ensured at startup.
type SeedAdminConfig struct {
	Email    string `envconfig:"PASARLOKAL_SEED_ADMIN_EMAIL"`
	Password string `envconfig:"PASARLOKAL_SEED_ADMIN_PASSWORD"`
	FullName string `envconfig:"PASARLOKAL_SEED_ADMIN_FULL_NAME" default:"Platform Admin"`
}

func (s SeedAdminConfig) Enabled() bool {
	return s.Email != "" && s.Password != ""
}

// TokenTTL returns the configured access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
