package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity provider (session JWT verification)
	AuthIssuer   string
	AuthJWKSURL  string
	AuthAudience string
	JWTSecret    string // HS256 fallback for first-party tooling

	// Payments
	CheckoutAPIKey       string
	CheckoutPriceID      string
	CheckoutSuccessURL   string
	CheckoutCancelURL    string
	PaymentWebhookSecret string

	// Object storage (note uploads)
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Moderation bootstrap
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string

	// Org registry
	OrgsConfigPath string

	HTTPClientTimeout time.Duration
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "studyhub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AuthIssuer:   getEnv("AUTH_ISSUER", ""),
		AuthJWKSURL:  getEnv("AUTH_JWKS_URL", ""),
		AuthAudience: getEnv("AUTH_AUDIENCE", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),

		CheckoutAPIKey:       getEnv("CHECKOUT_API_KEY", ""),
		CheckoutPriceID:      getEnv("CHECKOUT_PRICE_ID", ""),
		CheckoutSuccessURL:   getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/success?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURL:    getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/cancel"),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		OrgsConfigPath: getEnv("ORGS_CONFIG_PATH", "orgs.json"),

		HTTPClientTimeout: parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "10s")),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
