package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Session  SessionConfig
	DB       DBConfig
	Redis    RedisConfig
	Locale   LocaleConfig
	QRCode   QRCodeConfig
	LogLevel string
}

type AppConfig struct {
	Port     string
	Env      string
	Secret   string
	PageSize int
}

// BackendConfig describes the remote lab API the console talks to.
type BackendConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	JWTSecret  string
}

type SessionConfig struct {
	Store          string
	CookieName     string
	TTL            time.Duration
	ResolveTimeout time.Duration
	PrincipalTTL   time.Duration
	SecureCookie   bool
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type LocaleConfig struct {
	Default string
}

type QRCodeConfig struct {
	Size  int
	Level string
}

const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

var ErrMissingSecret = errors.New("APP_SECRET is required outside development")

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_SECRET", "")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("BACKEND_RETRY_COUNT", 0)
	v.SetDefault("BACKEND_JWT_SECRET", "")
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_COOKIE", "radlab_session")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_RESOLVE_TIMEOUT", "3s")
	v.SetDefault("SESSION_PRINCIPAL_TTL", "5m")
	v.SetDefault("SESSION_SECURE_COOKIE", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("QRCODE_SIZE", 256)
	v.SetDefault("QRCODE_LEVEL", "M")
	v.SetDefault("LOG_LEVEL", "info")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// .env is optional; the environment alone is enough.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			Secret:   v.GetString("APP_SECRET"),
			PageSize: v.GetInt("PAGE_SIZE"),
		},
		Backend: BackendConfig{
			BaseURL:    v.GetString("BACKEND_BASE_URL"),
			Timeout:    durationOr(v.GetString("BACKEND_TIMEOUT"), 15*time.Second),
			RetryCount: v.GetInt("BACKEND_RETRY_COUNT"),
			JWTSecret:  v.GetString("BACKEND_JWT_SECRET"),
		},
		Session: SessionConfig{
			Store:          v.GetString("SESSION_STORE"),
			CookieName:     v.GetString("SESSION_COOKIE"),
			TTL:            durationOr(v.GetString("SESSION_TTL"), 12*time.Hour),
			ResolveTimeout: durationOr(v.GetString("SESSION_RESOLVE_TIMEOUT"), 3*time.Second),
			PrincipalTTL:   durationOr(v.GetString("SESSION_PRINCIPAL_TTL"), 5*time.Minute),
			SecureCookie:   v.GetBool("SESSION_SECURE_COOKIE"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Locale: LocaleConfig{
			Default: v.GetString("DEFAULT_LANGUAGE"),
		},
		QRCode: QRCodeConfig{
			Size:  v.GetInt("QRCODE_SIZE"),
			Level: v.GetString("QRCODE_LEVEL"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if config.App.PageSize <= 0 {
		config.App.PageSize = 10
	}

	if config.App.Secret == "" {
		if !config.IsDev() {
			return nil, ErrMissingSecret
		}
		config.App.Secret = "dev-only-secret"
	}

	return config, nil
}

// IsDev reports whether the console runs in a development environment.
func (c *Config) IsDev() bool {
	return c.App.Env == "development" || c.App.Env == "test"
}

func durationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
