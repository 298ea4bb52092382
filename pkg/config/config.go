package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings for the server.
type Config struct {
	Port        string
	Env         string
	PostgresUrl string
	MongoURI    string
	JWTSecret   string
}

// Load reads a .env file when present and materializes the configuration
// from environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		PostgresUrl: getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:    getEnv("MONGO_URI", ""),
		JWTSecret:   getEnv("JWT_SECRET", "supersecretjwtkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
