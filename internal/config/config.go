package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	AppName     string `mapstructure:"APP_NAME"`
	APIPrefix   string `mapstructure:"API_PREFIX"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// Token configuration
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTExpirationMinutes int    `mapstructure:"JWT_EXPIRATION_MINUTES"`
	InvitationTTLHours   int    `mapstructure:"INVITATION_TTL_HOURS"`
	BcryptCost           int    `mapstructure:"BCRYPT_COST"`

	// URLs
	ServerURL      string   `mapstructure:"SERVER_URL"`
	FrontendURL    string   `mapstructure:"FRONTEND_URL"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Mail configuration
	MailAddress  string `mapstructure:"MAIL_ADDRESS"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailServer   string `mapstructure:"MAIL_SERVER"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables take precedence over the file
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// ALLOWED_ORIGINS arrives as a comma separated string from the environment
	config.AllowedOrigins = splitAndTrim(strings.Join(config.AllowedOrigins, ","))

	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}
	config.APIPrefix = "/" + strings.Trim(config.APIPrefix, "/")
	config.ServerURL = strings.TrimRight(config.ServerURL, "/")

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_NAME", "business-hub")
	v.SetDefault("API_PREFIX", "/api/v1")

	// Database defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "business_hub")
	v.SetDefault("DB_SSL_MODE", "disable")

	// Token defaults
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("INVITATION_TTL_HOURS", 24)
	v.SetDefault("BCRYPT_COST", 12)

	// URL defaults
	v.SetDefault("SERVER_URL", "http://localhost:8000")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	// Mail defaults; an empty server means invitations are only logged
	v.SetDefault("MAIL_ADDRESS", "")
	v.SetDefault("MAIL_PASSWORD", "")
	v.SetDefault("MAIL_SERVER", "")
	v.SetDefault("MAIL_PORT", 587)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	if config.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if config.DatabaseName == "" && config.DatabaseURL == "" {
		return fmt.Errorf("database name is required")
	}

	if config.JWTExpirationMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES must be positive")
	}

	if config.InvitationTTLHours <= 0 {
		return fmt.Errorf("INVITATION_TTL_HOURS must be positive")
	}

	return nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SessionTTL is the lifetime of an issued session token
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.JWTExpirationMinutes) * time.Minute
}

// InvitationTTL is the lifetime of an issued invitation token
func (c *Config) InvitationTTL() time.Duration {
	return time.Duration(c.InvitationTTLHours) * time.Hour
}

// MailEnabled reports whether outbound mail credentials are configured
func (c *Config) MailEnabled() bool {
	return c.MailServer != "" && c.MailAddress != ""
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
