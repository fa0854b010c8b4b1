package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// AI provider (OpenAI-compatible endpoint)
	AIAPIKey         string
	AIBaseURL        string
	AIModel          string
	AIConcurrentReqs int

	// Third-party search APIs
	YouTubeAPIKey string
	BooksAPIKey   string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "development"),
		DatabaseURL:      mustGetEnv("DATABASE_URL"),
		RedisURL:         mustGetEnv("REDIS_URL"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		AIAPIKey:         mustGetEnv("GROQ_API_KEY"),
		AIBaseURL:        getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		AIModel:          getEnvOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		AIConcurrentReqs: getEnvAsIntOrDefault("AI_CONCURRENT_REQUESTS", 5),
		YouTubeAPIKey:    getEnvOrDefault("YOUTUBE_API_KEY", ""),
		BooksAPIKey:      getEnvOrDefault("GOOGLE_BOOKS_API_KEY", ""),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
