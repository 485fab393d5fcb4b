// Package config reads process settings from the environment. A .env file,
// when present, is loaded first by the binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	JWT       JWTConfig
	RBAC      RBACConfig
	Report    ReportConfig
	Seed      SeedConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Env string
	// Store selects the persistence backend: "postgres" or "memory".
	Store string
}

func (c AppConfig) Development() bool { return c.Env == EnvDevelopment }

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Retries  int
}

type RedisConfig struct {
	Addr     string
	CacheTTL time.Duration
}

type KafkaConfig struct {
	Broker       string
	PollInterval time.Duration
	// MetricsPort serves the relay's /metrics; empty disables it.
	MetricsPort string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RBACConfig struct {
	// PolicyTTL bounds how long grants changed by another process stay
	// unseen by this one.
	PolicyTTL time.Duration
}

type ReportConfig struct {
	Location          *time.Location
	LowStockThreshold int
}

type SeedConfig struct {
	SuperadminEmail    string
	SuperadminPassword string
}

// RateLimitConfig limits mutations per actor and every API request per
// client IP.
type RateLimitConfig struct {
	PerSecond   float64
	Burst       int
	IPPerSecond float64
	IPBurst     int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_STORE", StorePostgres)

	v.SetDefault("PORT", "3000")
	v.SetDefault("HTTP_READ_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "go_pos")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_RETRIES", 5)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("VIEW_CACHE_TTL", time.Minute)

	v.SetDefault("KAFKA_POLL_INTERVAL", 3*time.Second)
	v.SetDefault("WORKER_METRICS_PORT", "9091")

	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("RBAC_POLICY_TTL", 30*time.Second)

	v.SetDefault("REPORT_TIMEZONE", "UTC")
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)

	v.SetDefault("RATE_LIMIT_PER_SECOND", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_IP_PER_SECOND", 20.0)
	v.SetDefault("RATE_LIMIT_IP_BURST", 40)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	loc, err := time.LoadLocation(v.GetString("REPORT_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:   v.GetString("APP_ENV"),
			Store: strings.ToLower(v.GetString("APP_STORE")),
		},
		HTTP: HTTPConfig{
			Port:         v.GetString("PORT"),
			ReadTimeout:  v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetDuration("HTTP_IDLE_TIMEOUT"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			Retries:  v.GetInt("DB_RETRIES"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			CacheTTL: v.GetDuration("VIEW_CACHE_TTL"),
		},
		Kafka: KafkaConfig{
			Broker:       v.GetString("KAFKA_BROKER"),
			PollInterval: v.GetDuration("KAFKA_POLL_INTERVAL"),
			MetricsPort:  v.GetString("WORKER_METRICS_PORT"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		RBAC: RBACConfig{
			PolicyTTL: v.GetDuration("RBAC_POLICY_TTL"),
		},
		Report: ReportConfig{
			Location:          loc,
			LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		},
		Seed: SeedConfig{
			SuperadminEmail:    v.GetString("SUPERADMIN_EMAIL"),
			SuperadminPassword: v.GetString("SUPERADMIN_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			PerSecond:   v.GetFloat64("RATE_LIMIT_PER_SECOND"),
			Burst:       v.GetInt("RATE_LIMIT_BURST"),
			IPPerSecond: v.GetFloat64("RATE_LIMIT_IP_PER_SECOND"),
			IPBurst:     v.GetInt("RATE_LIMIT_IP_BURST"),
		},
	}

	if cfg.App.Store != StorePostgres && cfg.App.Store != StoreMemory {
		return nil, fmt.Errorf("APP_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.App.Store)
	}
	if cfg.JWT.Secret == "" {
		if !cfg.App.Development() {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWT.Secret = "development-secret"
	}
	return cfg, nil
}
