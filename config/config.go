package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string          `json:"environment"`
	Server      ServerConfig    `json:"server"`
	ReviewAPI   ReviewAPIConfig `json:"review_api"`
	DatabaseURL string          `json:"database_url"`
	Redis       RedisConfig     `json:"redis"`
	SMTP        SMTPConfig      `json:"smtp"`
	AdminEmail  string          `json:"admin_email"`
	StaticDir   string          `json:"static_dir"`
}

type ServerConfig struct {
	Port         string        `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

type ReviewAPIConfig struct {
	Key     string `json:"key"`
	BaseURL string `json:"base_url"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Secure   bool   `json:"secure"`
}

const defaultConfigPath = "config/config.json"

// LoadConfig builds the configuration in three layers: defaults, an
// optional config/config.json overlay, then environment variables on top.
func LoadConfig() (*Config, error) {
	return loadConfig(defaultConfigPath)
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		StaticDir: "./public",
	}
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("REVIEW_API_KEY"); v != "" {
		c.ReviewAPI.Key = v
	}
	if v := os.Getenv("REVIEW_API_URL"); v != "" {
		c.ReviewAPI.BaseURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		c.SMTP.User = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_SECURE"); v != "" {
		if secure, err := strconv.ParseBool(v); err == nil {
			c.SMTP.Secure = secure
		}
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		c.AdminEmail = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasDatabase reports whether persistence is configured. Without it order
// submission still works; only the admin reporting endpoints go dark.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func (c *Config) HasSMTP() bool {
	return c.SMTP.Host != "" && c.SMTP.User != ""
}

func (c *Config) HasRedis() bool {
	return c.Redis.Addr != ""
}
