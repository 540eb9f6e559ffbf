package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	RateLimit      float64  `mapstructure:"rate_limit"`
	RateBurst      int      `mapstructure:"rate_burst"`
	WriteRoles     []string `mapstructure:"write_roles"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL          string `mapstructure:"url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

type BookingConfig struct {
	TickMinutes        int `mapstructure:"tick_minutes"`
	ArtistCacheMinutes int `mapstructure:"artist_cache_minutes"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// WorkerConfig is loaded from the environment; the worker binary runs in
// containers where a config file is not mounted.
type WorkerConfig struct {
	DatabaseHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DatabasePort     int           `envconfig:"DB_PORT" default:"5432"`
	DatabaseUser     string        `envconfig:"DB_USER" default:"postgres"`
	DatabasePassword string        `envconfig:"DB_PASSWORD" default:""`
	DatabaseName     string        `envconfig:"DB_NAME" default:"bookings"`
	DatabaseSSLMode  string        `envconfig:"DB_SSLMODE" default:"disable"`
	RedisURL         string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	BatchSize        int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval     time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryAttempts    int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	RetryDelay       time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"5s"`
	MetricsPort      int           `envconfig:"METRICS_PORT" default:"9091"`
}

func LoadWorkerConfig() (*WorkerConfig, error) {
	var config WorkerConfig
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process worker config: %w", err)
	}
	return &config, nil
}

func (c *WorkerConfig) Database() DatabaseConfig {
	return DatabaseConfig{
		Host:     c.DatabaseHost,
		Port:     c.DatabasePort,
		User:     c.DatabaseUser,
		Password: c.DatabasePassword,
		Name:     c.DatabaseName,
		SSLMode:  c.DatabaseSSLMode,
	}
}
