package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Guest GuestConfig
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
	Env          string `envconfig:"FEATHERMART_APP_ENV" required:"true"`
	Port         string `envconfig:"FEATHERMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FEATHERMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FEATHERMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FEATHERMART_DB_DSN"`
	Driver string `envconfig:"FEATHERMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FEATHERMART_DB_HOST"`
	LegacyPort     int    `envconfig:"FEATHERMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FEATHERMART_DB_USER"`
	LegacyPassword string `envconfig:"FEATHERMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"FEATHERMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"FEATHERMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FEATHERMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FEATHERMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FEATHERMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FEATHERMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FEATHERMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FEATHERMART_REDIS_ADDR"`
	Password     string        `envconfig:"FEATHERMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"FEATHERMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FEATHERMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FEATHERMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FEATHERMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FEATHERMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FEATHERMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FEATHERMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FEATHERMART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FEATHERMART_JWT_EXPIRATION_MINUTES" required:"true"`
}

// GuestConfig tunes the anonymous visitor state slot.
type GuestConfig struct {
	CookieName string        `envconfig:"FEATHERMART_GUEST_COOKIE_NAME" default:"fm_guest"`
	StateTTL   time.Duration `envconfig:"FEATHERMART_GUEST_STATE_TTL" default:"720h"`
	SecureOnly bool          `envconfig:"FEATHERMART_GUEST_COOKIE_SECURE" default:"true"`
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
