package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers understood by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string
	StoreDriver     string
	DatabaseURL     string
	RunMigrations   bool
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	AdminEmails     []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	mongoURI := os.Getenv("MONGO_URI")

	driver := normalizeStoreDriver(getEnv("STORE_DRIVER", ""), dbURL, mongoURI)
	if env == "production" && driver == StoreMemory {
		log.Printf("STORE_DRIVER=memory in production; data will not survive restarts")
	}

	return Config{
		Port:            getEnv("PORT", "5000"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		StoreDriver:     driver,
		DatabaseURL:     dbURL,
		RunMigrations:   parseBool(getEnv("RUN_MIGRATIONS", "true")),
		MongoURI:        mongoURI,
		MongoDatabase:   getEnv("MONGO_DB", "resume_builder"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminEmails:     lowerAll(splitAndTrim(getEnv("ADMIN_EMAILS", ""))),
	}
}

// IsDevLike reports whether env is a local development environment.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}

// normalizeStoreDriver falls back to whichever connection string is set when
// STORE_DRIVER is empty.
func normalizeStoreDriver(raw, dbURL, mongoURI string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg", "postgresql":
		return StorePostgres
	case "mongo", "mongodb":
		return StoreMongo
	case "memory", "mem":
		return StoreMemory
	}
	switch {
	case strings.TrimSpace(dbURL) != "":
		return StorePostgres
	case strings.TrimSpace(mongoURI) != "":
		return StoreMongo
	default:
		return StoreMemory
	}
}
