package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	LogLevel string

	OpenRouterAPIKey   string
	OpenRouterBase     string
	OpenRouterModel    string
	OpenRouterAppTitle string
	OpenRouterReferer  string

	// ChromePath — путь к бинарю Chrome/Chromium для рендера PDF.
	// Пустое значение — chromedp ищет браузер сам.
	ChromePath string

	PreviewTTLMinutes   int
	PreviewSweepMinutes int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "cvbuilder-service"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBase:     getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "qwen/qwen2.5-32b-instruct"),
		OpenRouterAppTitle: getEnv("OPENROUTER_APP_TITLE", "cvbuilder"),
		OpenRouterReferer:  os.Getenv("OPENROUTER_REFERER"),

		ChromePath: os.Getenv("CHROME_PATH"),

		PreviewTTLMinutes:   getEnvInt("PREVIEW_TTL_MINUTES", 30),
		PreviewSweepMinutes: getEnvInt("PREVIEW_SWEEP_MINUTES", 5),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
