package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	MigrationsPath   string
	AIProvider       string
	OpenAIKey        string
	GeminiKey        string
	AIRequestTimeout time.Duration
	TherapyDocsPath  string
	ServerHost       string
	ServerPort       string
	JWTSigningKey    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Не найден файл .env")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnv("POSTGRES_DB", "mindwell"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "migrations"),
		AIProvider:       getEnv("AI_PROVIDER", "gemini"),
		OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
		GeminiKey:        getEnv("GOOGLE_API_KEY", ""),
		AIRequestTimeout: getEnvDuration("AI_REQUEST_TIMEOUT_SECONDS", 30*time.Second),
		TherapyDocsPath:  getEnv("THERAPY_DOCS_PATH", "data/therapy_documents.json"),
		ServerHost:       getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		JWTSigningKey:    getEnv("JWT_SIGNING_KEY", "your-secret-signing-key"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		logrus.Warnf("Некорректное значение %s=%s, используется значение по умолчанию", key, value)
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
