package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"midtrans-go/pkg/midtrans"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort     = "8080"
	defaultHTTPTimeout = 15 * time.Second
)

type Config struct {
	AppEnv             string
	AppPort            string
	MidtransServerKey  string
	MidtransClientKey  string
	MidtransProduction bool
	HTTPTimeout        time.Duration
}

// LoadConfig reads .env (when present) and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            os.Getenv("APP_ENV"),
		AppPort:           os.Getenv("APP_PORT"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
		HTTPTimeout:       defaultHTTPTimeout,
	}

	if cfg.AppPort == "" {
		cfg.AppPort = defaultAppPort
	}

	if v := os.Getenv("MIDTRANS_IS_PRODUCTION"); v != "" {
		prod, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MIDTRANS_IS_PRODUCTION %q: %w", v, err)
		}
		cfg.MidtransProduction = prod
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	if cfg.MidtransServerKey == "" {
		return nil, fmt.Errorf("MIDTRANS_SERVER_KEY is not set")
	}

	return cfg, nil
}

// Midtrans returns the immutable SDK configuration.
func (c *Config) Midtrans() midtrans.Config {
	return midtrans.Config{
		ServerKey:    c.MidtransServerKey,
		ClientKey:    c.MidtransClientKey,
		IsProduction: c.MidtransProduction,
	}
}
