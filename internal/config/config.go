package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string
	Origin       string
	JWTSecret    string
	Timeout      time.Duration

	// AllowDebugBypass lets the sentinel BSSID "DEBUG_BSSID" pass the
	// network gate. Testing only; must stay off in production.
	AllowDebugBypass bool

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with default values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:             getEnv("PORT", "8000"),
		MongoURI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:     getEnv("DATABASE_NAME", "classsync"),
		Origin:           getEnv("ORIGIN", "http://localhost:19006"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		Timeout:          10 * time.Second,
		AllowDebugBypass: getEnv("ALLOW_DEBUG_BYPASS", "false") == "true",
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
