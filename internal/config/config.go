// Package config содержит логику чтения конфигурации витрины UC.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress     = "localhost:8080"
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
	defaultSessionIdle    = 30 * time.Minute
	defaultEnvFile        = ".env"
)

// Config содержит параметры конфигурации витрины UC.
type Config struct {
	RunAddress         string        `env:"RUN_ADDRESS"`
	OrderServiceURL    string        `env:"ORDER_SERVICE_URL"`
	PaymentServiceURL  string        `env:"PAYMENT_SERVICE_URL"`
	SettingsServiceURL string        `env:"SETTINGS_SERVICE_URL"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel           string        `env:"LOG_LEVEL"`
	SessionSecret      string        `env:"SESSION_SECRET"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT"`
}

// Parse считывает конфигурацию из .env-файла, флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fromEnv := *cfg

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.OrderServiceURL, "o", "", "order service URL")
	flag.StringVar(&cfg.PaymentServiceURL, "p", "", "payment service URL")
	flag.StringVar(&cfg.SettingsServiceURL, "s", "", "settings service URL")
	flag.DurationVar(&cfg.RequestTimeout, "t", defaultRequestTimeout, "timeout for outbound requests")
	flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
	flag.StringVar(&cfg.SessionSecret, "k", "", "session cookie signing key")
	flag.DurationVar(&cfg.SessionIdleTimeout, "i", defaultSessionIdle, "idle time after which an order dialog is dropped")

	flag.Parse()

	if fromEnv.RunAddress != "" {
		cfg.RunAddress = fromEnv.RunAddress
	}
	if fromEnv.OrderServiceURL != "" {
		cfg.OrderServiceURL = fromEnv.OrderServiceURL
	}
	if fromEnv.PaymentServiceURL != "" {
		cfg.PaymentServiceURL = fromEnv.PaymentServiceURL
	}
	if fromEnv.SettingsServiceURL != "" {
		cfg.SettingsServiceURL = fromEnv.SettingsServiceURL
	}
	if fromEnv.RequestTimeout > 0 {
		cfg.RequestTimeout = fromEnv.RequestTimeout
	}
	if fromEnv.LogLevel != "" {
		cfg.LogLevel = fromEnv.LogLevel
	}
	if fromEnv.SessionSecret != "" {
		cfg.SessionSecret = fromEnv.SessionSecret
	}
	if fromEnv.SessionIdleTimeout > 0 {
		cfg.SessionIdleTimeout = fromEnv.SessionIdleTimeout
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.SessionIdleTimeout <= 0 {
		cfg.SessionIdleTimeout = defaultSessionIdle
	}

	return cfg, nil
}

// loadEnvFile подгружает переменные из .env-файла, если он есть. Уже заданные
// переменные окружения не перезаписываются.
func loadEnvFile() error {
	path := defaultEnvFile
	if custom, ok := os.LookupEnv("CONFIG_ENV_PATH"); ok && custom != "" {
		path = custom
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("access env file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
