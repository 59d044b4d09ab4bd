package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Env             string           `json:"env"`
	Port            int              `json:"port"`
	JWTSecret       string           `json:"jwt_secret"`
	JWTTTLHours     int              `json:"jwt_ttl_hours"`
	ResetTTLMinutes int              `json:"reset_ttl_minutes"`
	RateLimitMS     int              `json:"rate_limit_ms"`
	Database        DatabaseConfig   `json:"database"`
	Mail            MailConfig       `json:"mail"`
	CORSAllowlist   []string         `json:"cors_allowlist"`
	LogConfig       logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// IsProduction gates the redaction of internal error messages.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.ResetTTLMinutes == 0 {
		cfg.ResetTTLMinutes = 60
	}
	if cfg.RateLimitMS == 0 {
		cfg.RateLimitMS = 1000
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}
