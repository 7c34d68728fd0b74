package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	URLFile     string `mapstructure:"url_file"`
	PostgresURL string `mapstructure:"postgres_url"`
	Driver      string `mapstructure:"driver"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Enabled reports whether welcome emails can be sent.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type Config struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	Version     string `mapstructure:"version"`

	Database    DatabaseConfig `mapstructure:"database"`
	RabbitMQURL string         `mapstructure:"rabbitmq_url"`
	Mail        MailConfig     `mapstructure:"mail"`

	CORSAllowedOrigins     []string      `mapstructure:"cors_allowed_origins"`
	LeadRateLimit          int           `mapstructure:"lead_rate_limit"`
	LeadRateWindow         time.Duration `mapstructure:"lead_rate_window"`
	MetricsRefreshInterval time.Duration `mapstructure:"metrics_refresh_interval"`
}

// DatabaseURL is the resolved connection string, empty when no database is configured.
func (c *Config) DatabaseURL() string {
	return c.Database.URL
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

var (
	// envBindings maps config keys to the environment variables that feed
	// them, preferred name first.
	envBindings = map[string][]string{
		"port":                     {"PORT"},
		"environment":              {"ENVIRONMENT", "APP_ENV"},
		"log_level":                {"LOG_LEVEL"},
		"version":                  {"APP_VERSION"},
		"database.url":             {"DATABASE_URL"},
		"database.url_file":        {"DATABASE_URL_FILE"},
		"database.postgres_url":    {"POSTGRES_URL"},
		"database.driver":          {"DB_DRIVER"},
		"rabbitmq_url":             {"RABBITMQ_URL"},
		"mail.host":                {"MAIL_HOST"},
		"mail.port":                {"MAIL_PORT"},
		"mail.user":                {"MAIL_USER"},
		"mail.password":            {"MAIL_PASS", "MAIL_PASSWORD"},
		"mail.from":                {"MAIL_FROM"},
		"cors_allowed_origins":     {"CORS_ALLOWED_ORIGINS"},
		"lead_rate_limit":          {"LEAD_RATE_LIMIT"},
		"lead_rate_window":         {"LEAD_RATE_WINDOW"},
		"metrics_refresh_interval": {"METRICS_REFRESH_INTERVAL"},
	}

	defaults = map[string]any{
		"port":                     "8080",
		"environment":              "development",
		"log_level":                "info",
		"version":                  "dev",
		"database.driver":          "pgx",
		"mail.port":                587,
		"mail.from":                "hola@fluentcrm.app",
		"cors_allowed_origins":     []string{"*"},
		"lead_rate_limit":          10,
		"lead_rate_window":         time.Minute,
		"metrics_refresh_interval": time.Minute,
	}
)

// Load reads the optional dotenv files (".env" when none are given) and then
// the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(cfg.CORSAllowedOrigins)
	if err := cfg.resolveDatabaseURL(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}

// resolveDatabaseURL picks DATABASE_URL, then the content of
// DATABASE_URL_FILE, then POSTGRES_URL.
func (c *Config) resolveDatabaseURL() error {
	db := &c.Database
	db.URL = strings.TrimSpace(db.URL)
	if db.URL != "" {
		return nil
	}

	if db.URLFile != "" {
		raw, err := os.ReadFile(db.URLFile)
		if err != nil {
			return fmt.Errorf("failed to read DATABASE_URL_FILE: %w", err)
		}
		db.URL = strings.TrimSpace(string(raw))
		if db.URL != "" {
			return nil
		}
	}

	db.URL = strings.TrimSpace(db.PostgresURL)
	return nil
}

// splitList accepts both a real list and a single comma separated value.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
