// internal/infra/config/config.go
package config

import (
	"os"
	"strings"
)

// Config holds the environment configuration of the storefront service.
type Config struct {
	Port   string
	ShopID string

	// External commerce API.
	CommerceBaseURL string
	StoreAPIToken   string
	// Secret Manager secret id holding the store API token. Takes
	// precedence over STORE_API_TOKEN when set.
	StoreAPITokenSecret string

	// Guest storage backend: memory | redis | firestore | postgres.
	GuestStoreBackend string

	// redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// firestore
	GCPProjectID             string
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// mail
	SendgridAPIKey string
	MailFrom       string

	AllowedOrigins []string
}

// Load reads the environment into a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	cfg := &Config{
		Port:   getenvDefault("PORT", "8080"),
		ShopID: getenvDefault("SHOP_ID", "panastore"),

		CommerceBaseURL:     os.Getenv("COMMERCE_BASE_URL"),
		StoreAPIToken:       os.Getenv("STORE_API_TOKEN"),
		StoreAPITokenSecret: os.Getenv("STORE_API_TOKEN_SECRET"),

		GuestStoreBackend: getenvDefault("GUEST_STORE_BACKEND", "memory"),

		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       0,

		GCPProjectID:             defaultProject,
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		DBHost:     getenvDefault("DB_HOST", "localhost"),
		DBPort:     getenvDefault("DB_PORT", "5432"),
		DBUser:     getenvDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenvDefault("DB_NAME", "panastore"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       getenvDefault("MAIL_FROM", "noreply@panastore.example"),

		AllowedOrigins: splitCSV(os.Getenv("ALLOWED_ORIGINS")),
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
