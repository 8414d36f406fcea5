// Package config loads the service configuration from the environment
// and holds the tunable constants.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the environment-driven part of the configuration.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel   string
	Language   string
	LocalesDir string
}

// Load reads .env when present and assembles the configuration with
// sensible local-development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded, relying on process environment")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "nearchat"),
		DBPassword: getEnv("DB_PASSWORD", "nearchat"),
		DBName:     getEnv("DB_NAME", "nearchat"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Language:   getEnv("LANGUAGE", "ko"),
		LocalesDir: getEnv("LOCALES_DIR", "locales"),
	}
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).
			Warn("invalid integer in environment, using fallback")
		return fallback
	}
	return n
}
