package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Guest    GuestConfig
	Share    ShareConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenWeather string
	NewsAPI     string
}

type AIConfig struct {
	LLMProvider   string // "groq" or "ollama"
	LLMModel      string // e.g. "llama-3.3-70b-versatile", "llama3"
	GroqAPIKey    string
	OllamaBaseURL string
}

type GuestConfig struct {
	SessionTTLDays int
}

type ShareConfig struct {
	DefaultExpiryDays int
	MaxExpiryDays     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenWeather: getEnv("OPENWEATHER_API_KEY", ""),
			NewsAPI:     getEnv("NEWSAPI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "groq"),
			LLMModel:      getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
			GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Guest: GuestConfig{
			SessionTTLDays: getEnvAsInt("GUEST_SESSION_TTL_DAYS", 30),
		},
		Share: ShareConfig{
			DefaultExpiryDays: getEnvAsInt("SHARE_DEFAULT_EXPIRY_DAYS", 30),
			MaxExpiryDays:     getEnvAsInt("SHARE_MAX_EXPIRY_DAYS", 365),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
