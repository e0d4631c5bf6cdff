package config

import (
	"os"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	// DSN selects the database: "file:..." opens SQLite,
	// "postgres://..." opens PostgreSQL.
	DSN string
}

// AppConfig carries the display metadata exposed alongside the service.
type AppConfig struct {
	Name        string
	Description string
	Version     string
}

// Load reads configuration from the environment once. The result is passed
// into every component that needs it; nothing reads env vars after startup.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_URL", "file:tickets.db"),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Ticket Service"),
			Description: getEnv("APP_DESC", "A minimal issue tracking API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
