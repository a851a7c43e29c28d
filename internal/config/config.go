package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is read from the environment. godotenv in main makes a local .env
// file work; nothing here ever writes credentials back to disk.
type Config struct {
	DBPath             string
	ReminderWindowDays int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func Load() (*Config, error) {
	cfg := &Config{
		DBPath:             envOr("DB_PATH", "./tasks.db"),
		ReminderWindowDays: 2,
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           587,
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           os.Getenv("SMTP_FROM"),
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SMTP_PORT %q is not a number", v)
		}
		cfg.SMTPPort = port
	}

	if v := os.Getenv("REMINDER_WINDOW_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("REMINDER_WINDOW_DAYS %q is not a non-negative number", v)
		}
		cfg.ReminderWindowDays = days
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUsername
	}

	return cfg, nil
}

func (c *Config) EmailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
