package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string
	HTTPTimeoutMs int

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	PageSize       int

	SessionPath         string
	PlaceholderImageURL string

	CallbackListenAddr string
	HomePath           string

	CSVOutputPath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		APIBaseURL:    getEnv("RENTEASE_API_URL", "https://renteaseapi.onrender.com/api"),
		HTTPTimeoutMs: getEnvInt("HTTP_TIMEOUT_MS", 15000),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		PageSize:       getEnvInt("PAGE_SIZE", 10),

		SessionPath:         getEnv("SESSION_PATH", defaultSessionPath()),
		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", "https://placehold.co/600x400?text=No+Image"),

		CallbackListenAddr: getEnv("CALLBACK_LISTEN_ADDR", "127.0.0.1:8642"),
		HomePath:           getEnv("HOME_PATH", "/home"),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/listings.csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "rentease"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "rentease123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rentease_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string for the local snapshot cache.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rentease-session.json"
	}
	return filepath.Join(home, ".rentease", "session.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
