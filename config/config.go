package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"hotel"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	TimeZone string `env:"TIMEZONE" envDefault:"UTC"`
}

// DSN trả về chuỗi kết nối postgres
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
}

// RedisConfig: Addr rỗng nghĩa là không dùng cache.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

type JobsConfig struct {
	CheckoutEnabled bool   `env:"CHECKOUT_JOB_ENABLED" envDefault:"true"`
	CheckoutCron    string `env:"CHECKOUT_CRON" envDefault:"0 0 * * *"`
}

type Config struct {
	Env          string         `env:"ENV" envDefault:"dev"`
	Port         string         `env:"PORT" envDefault:"8083"`
	StoreDriver  string         `env:"STORE_DRIVER" envDefault:"postgres"`
	Database     DatabaseConfig `envPrefix:"DB_"`
	Redis        RedisConfig    `envPrefix:"REDIS_"`
	Log          LogConfig      `envPrefix:"LOG_"`
	Jobs         JobsConfig
	RoomCacheTTL time.Duration `env:"ROOM_CACHE_TTL" envDefault:"10m"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envSeparator:","`
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

// Load đọc .env (nếu có) rồi parse biến môi trường vào Config.
func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}
