package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string

	// WSAllowedOrigins limits which browser origins may open /ws. Empty allows any.
	WSAllowedOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optOr := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	list := func(key string) []string {
		var out []string
		for _, part := range strings.Split(opt(key), ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	num := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		MigrationsDir: opt("MIGRATIONS_DIR"),

		WSAllowedOrigins: list("WS_ALLOWED_ORIGINS"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optOr("DB_SSL_MODE", "disable"),

		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     optOr("REDIS_HOST", "localhost"),
		Port:     optOr("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       num("REDIS_DB", 0),
		TTL:      time.Duration(num("REDIS_TTL", 600)) * time.Second,
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadDatabase reads only the database section. The CLI uses it for migrate and seed,
// which never serve HTTP and so have no use for the app or JWT settings.
func LoadDatabase() (DatabaseConfig, error) {
	host := strings.TrimSpace(os.Getenv("DB_HOST"))
	port := strings.TrimSpace(os.Getenv("DB_PORT"))
	name := strings.TrimSpace(os.Getenv("DB_NAME"))
	usr := strings.TrimSpace(os.Getenv("DB_USER"))

	var missing []string
	for _, kv := range [][2]string{{"DB_HOST", host}, {"DB_PORT", port}, {"DB_NAME", name}, {"DB_USER", usr}} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}
	if len(missing) > 0 {
		return DatabaseConfig{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	ssl := strings.TrimSpace(os.Getenv("DB_SSL_MODE"))
	if ssl == "" {
		ssl = "disable"
	}

	return DatabaseConfig{
		DBHost:         host,
		DBPort:         port,
		DBName:         name,
		DBUser:         usr,
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBSSLMode:      ssl,
		ConnectTimeout: 5 * time.Second,
	}, nil
}
