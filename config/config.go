package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	Port             string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	RedisAddr        string
	RedisPassword    string
	JWTSecret        string
	ClientUrl        string
	MailHost         string
	MailPort         string
	MailUsername     string
	MailPassword     string
	DefaultPassword  string
)

// LoadEnv loads the .env file (if present) and reads all settings into the
// package variables. Called once from main before anything else starts.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Port = getEnv("PORT", "8080")
	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "nandhub")
	RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	JWTSecret = os.Getenv("JWT_SECRET")
	ClientUrl = getEnv("CLIENT_URL", "http://localhost:5173")
	MailHost = os.Getenv("MAIL_HOST")
	MailPort = getEnv("MAIL_PORT", "587")
	MailUsername = os.Getenv("MAIL_USERNAME")
	MailPassword = os.Getenv("MAIL_PASSWORD")
	DefaultPassword = os.Getenv("DEFAULT_ADMIN_PASSWORD")

	if JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
