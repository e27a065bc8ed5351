package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting read from the environment.
type Config struct {
	Port              string
	DSN               string
	AutoMigrate       bool
	JWTSecret         []byte
	ProfileStore      string
	RedisAddr         string
	RedisPassword     string
	AMQPURL           string
	StripeSecretKey   string
	BillingReturnURL  string
	PremiumPriceID    string
	EnterprisePriceID string
	UploadBase        string
	CORSOrigins       []string
	Release           bool
}

// loadConfig reads ./.env when present (existing variables win) and then
// builds the Config from the environment.
func loadConfig() Config {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	return Config{
		Port:              envOr("PORT", "8081"),
		DSN:               os.Getenv("DB_DSN"),
		AutoMigrate:       envBool("DB_AUTO_MIGRATE", true),
		JWTSecret:         []byte(secret),
		ProfileStore:      strings.ToLower(envOr("PROFILE_STORE", "memory")),
		RedisAddr:         envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		BillingReturnURL:  envOr("BILLING_RETURN_URL", "http://localhost:3000/settings/billing"),
		PremiumPriceID:    os.Getenv("STRIPE_PREMIUM_PRICE_ID"),
		EnterprisePriceID: os.Getenv("STRIPE_ENTERPRISE_PRICE_ID"),
		UploadBase:        envOr("UPLOAD_BASE", "uploads"),
		CORSOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
		Release:           os.Getenv("GIN_MODE") == "release",
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return def
	case "false", "0", "no":
		return false
	default:
		return true
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
