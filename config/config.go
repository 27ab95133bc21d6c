package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	JWTSecret         string
	Port              string
	Env               string
	GreenWorldBaseURL string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		Port:              os.Getenv("PORT"),
		Env:               os.Getenv("ENV"),
		GreenWorldBaseURL: os.Getenv("GREEN_WORLD_BASE_URL"),
	}

	if config.GreenWorldBaseURL == "" {
		config.GreenWorldBaseURL = "http://localhost:8080"
	}

	return config, nil
}

// GreenWorldBaseURL returns the partner API base URL without requiring a
// full config load, for helpers outside the request path.
func GreenWorldBaseURL() string {
	if url := os.Getenv("GREEN_WORLD_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}
