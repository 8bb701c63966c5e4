package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort      string `yaml:"APP_PORT"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// JWT key shared with the auth service
	JWTSecret string `yaml:"JWT_SECRET"`

	// Redis, used for cross-instance entity locks
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":       "8080",
	"RATE_LIMIT_MAX": "20",
	"DB_DRIVER":      "postgres",
	"DB_PATH":        "pantry.db",
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "json",
}

// LoadConfig reads config.yaml from the working directory. A missing file
// is not fatal: environment variables and defaults still apply.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	var c Config
	if err := yaml.Unmarshal(file, &c); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
	config = c
}

// GetConfig returns the environment value for key, falling back to the
// YAML file and then to the built-in default.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := fileValue(key); v != "" {
		return v
	}
	return defaults[key]
}

func fileValue(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "JWT_SECRET":
		return config.JWTSecret
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	default:
		return ""
	}
}
