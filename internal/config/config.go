package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TodoConfig holds configuration for the todo service.
type TodoConfig struct {
	Env            string
	ServerPort     int
	DatabasePath   string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

// WeatherConfig holds configuration for the weather service.
type WeatherConfig struct {
	Env             string
	ServerPort      int
	DatabasePath    string
	ProviderBaseURL string
	ProviderAPIKey  string
	PruneSchedule   string
	Retention       time.Duration
	AllowedOrigins  []string
}

// LoadTodo loads todo service configuration from the environment,
// reading a .env file first if one is present.
func LoadTodo() (*TodoConfig, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := &TodoConfig{
		Env:            getEnv("APP_ENV", "dev"),
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./todos.db"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getDurationEnv("TOKEN_TTL", 20*time.Minute),
		AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// LoadWeather loads weather service configuration from the environment.
func LoadWeather() (*WeatherConfig, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8081"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := &WeatherConfig{
		Env:             getEnv("APP_ENV", "dev"),
		ServerPort:      port,
		DatabasePath:    getEnv("DATABASE_PATH", "./weather.db"),
		ProviderBaseURL: getEnv("WEATHER_API_BASE_URL", "http://api.weatherapi.com/v1"),
		ProviderAPIKey:  getEnv("WEATHER_API_KEY", ""),
		PruneSchedule:   getEnv("PRUNE_SCHEDULE", "@hourly"),
		Retention:       getDurationEnv("READING_RETENTION", 24*time.Hour),
		AllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.ProviderAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
