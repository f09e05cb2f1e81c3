// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the server.
type Config struct {
	AppPort            string
	AppEnv             string
	LogLevel           string
	DatabaseDriver     string
	DatabaseDSN        string
	JWTSecret          string
	JWTExpiry          time.Duration
	RabbitMQURL        string
	ProductEventsQueue string
	UploadDir          string
	HostAPI            string
	SeedEnabled        bool
	LoginRateLimit     int
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=teslo port=5432 sslmode=disable")
	v.SetDefault("JWT_EXPIRY", "2h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("PRODUCT_EVENTS_QUEUE", "product_events")
	v.SetDefault("UPLOAD_DIR", "./static/products")
	v.SetDefault("HOST_API", "http://localhost:3000/api")
	v.SetDefault("SEED_ENABLED", false)
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v and checks the required keys.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:            v.GetString("APP_PORT"),
		AppEnv:             v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		DatabaseDriver:     v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTExpiry:          v.GetDuration("JWT_EXPIRY"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		ProductEventsQueue: v.GetString("PRODUCT_EVENTS_QUEUE"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		HostAPI:            v.GetString("HOST_API"),
		SeedEnabled:        v.GetBool("SEED_ENABLED"),
		LoginRateLimit:     v.GetInt("LOGIN_RATE_LIMIT"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}
