// Env loader
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv       string
	Port         string
	DBHost       string
	DBPort       string
	DBName       string
	DBUser       string
	DBPassword   string
	DBSchema     string
	SelectorSeed int64
}

// LoadConfig loads environment variables from the .env file
func LoadConfig() *Config {

	appEnv := os.Getenv("APP_ENV")

	switch appEnv {
	case "production":
		if err := godotenv.Load(".env.production"); err == nil {
			fmt.Println("Loaded .env.production")
		}
	default:
		if err := godotenv.Load(".env.development"); err == nil {
			fmt.Println("Loaded .env.development")
		}
	}

	cfg := &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "8080"),
		DBHost:       getEnv("BLUEPRINT_DB_HOST", "localhost"),
		DBPort:       getEnv("BLUEPRINT_DB_PORT", "5432"),
		DBName:       getEnv("BLUEPRINT_DB_DATABASE", "daily_verse"),
		DBUser:       getEnv("BLUEPRINT_DB_USERNAME", "postgres"),
		DBPassword:   getEnv("BLUEPRINT_DB_PASSWORD", ""),
		DBSchema:     getEnv("BLUEPRINT_DB_SCHEMA", "public"),
		SelectorSeed: getEnvInt64("SELECTOR_SEED", 0),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt64 parses an integer env var; malformed values fall back to the
// default. SELECTOR_SEED=0 means "seed from the clock".
func getEnvInt64(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		fmt.Printf("Ignoring invalid %s=%q\n", key, value)
		return defaultValue
	}
	return parsed
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
