package config

import (
	"os"
	"time"
)

type IyzicoConfig struct {
	APIKey    string
	SecretKey string
	BaseURL   string
}

type ReconcileConfig struct {
	Interval   time.Duration
	PendingTTL time.Duration
}

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	FrontendURL string
	Iyzico      IyzicoConfig
	Reconcile   ReconcileConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	cfg.Iyzico.APIKey = os.Getenv("IYZICO_API_KEY")
	cfg.Iyzico.SecretKey = os.Getenv("IYZICO_SECRET_KEY")
	cfg.Iyzico.BaseURL = getEnv("IYZICO_BASE_URL", "https://sandbox-api.iyzipay.com")

	cfg.Reconcile.Interval = getDuration("RECONCILE_INTERVAL", 5*time.Minute)
	cfg.Reconcile.PendingTTL = getDuration("PENDING_PAYMENT_TTL", 30*time.Minute)

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
