package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabasePath string
	Port         string
	LogLevel     string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AppName      string

	// Scheduler; the cron spec fires the notification pass once per hour.
	SchedulerEnabled bool
	SchedulerCron    string

	CORSAllowOrigins []string
}

func Load() *Config {
	return &Config{
		DatabasePath: getEnv("DATABASE_PATH", "./birthdays.db"),
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		TokenDuration: getDuration("TOKEN_DURATION", 24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@birthdayreminder.local"),
		AppName:      getEnv("APP_NAME", "Birthday Reminder"),

		SchedulerEnabled: getBool("SCHEDULER_ENABLED", true),
		SchedulerCron:    getEnv("SCHEDULER_CRON", "0 * * * *"),

		CORSAllowOrigins: []string{getEnv("CORS_ALLOW_ORIGIN", "*")},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
