package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported storage backends
const (
	StorageLocal = "local"
	StorageMinIO = "minio"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string   `yaml:"port" env:"SERVER_PORT"`
		Mode         string   `yaml:"mode" env:"SERVER_MODE"`
		MaxBodyBytes int64    `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES"`
		CORSOrigins  []string `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		Path            string `yaml:"path" env:"DB_PATH"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost            int    `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST"`
		VerificationTokenTTL  string `yaml:"verification_token_ttl" env:"AUTH_VERIFICATION_TOKEN_TTL"`
		RateLimitCapacity     int    `yaml:"rate_limit_capacity" env:"AUTH_RATE_LIMIT_CAPACITY"`
		RateLimitRefillPerMin int    `yaml:"rate_limit_refill_per_min" env:"AUTH_RATE_LIMIT_REFILL_PER_MIN"`
	} `yaml:"auth"`

	Storage struct {
		Backend        string `yaml:"backend" env:"STORAGE_BACKEND"`
		Path           string `yaml:"path" env:"STORAGE_PATH"`
		ResumeDir      string `yaml:"resume_dir" env:"STORAGE_RESUME_DIR"`
		MaxResumeBytes int64  `yaml:"max_resume_bytes" env:"STORAGE_MAX_RESUME_BYTES"`
	} `yaml:"storage"`

	MinIO struct {
		Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
		AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
		SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
		Bucket    string `yaml:"bucket" env:"MINIO_BUCKET"`
		Region    string `yaml:"region" env:"MINIO_REGION"`
		UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
	} `yaml:"minio"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	RabbitMQ struct {
		URL      string `yaml:"url" env:"RABBITMQ_URL"`
		Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE"`
	} `yaml:"rabbitmq"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		BaseURL   string `yaml:"base_url" env:"SMTP_BASE_URL"`
	} `yaml:"smtp"`

	Scheduler struct {
		Enabled         bool   `yaml:"enabled" env:"SCHEDULER_ENABLED"`
		OrphanSweepSpec string `yaml:"orphan_sweep_spec" env:"SCHEDULER_ORPHAN_SWEEP_SPEC"`
		OrphanGrace     string `yaml:"orphan_grace" env:"SCHEDULER_ORPHAN_GRACE"`
		TokenPurgeSpec  string `yaml:"token_purge_spec" env:"SCHEDULER_TOKEN_PURGE_SPEC"`
	} `yaml:"scheduler"`

	Seed struct {
		Enabled             bool   `yaml:"enabled" env:"SEED_ENABLED"`
		CoordinatorEmail    string `yaml:"coordinator_email" env:"SEED_COORDINATOR_EMAIL"`
		CoordinatorPassword string `yaml:"coordinator_password" env:"SEED_COORDINATOR_PASSWORD"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env never overrides variables already present in the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.MaxBodyBytes = 6 << 20
	config.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3001"}

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "placement"
	config.Database.SSLMode = "disable"
	config.Database.Path = "placement.db"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.Expiration = "24h"
	config.JWT.Issuer = "placement-portal"

	config.Auth.BcryptCost = 10
	config.Auth.VerificationTokenTTL = "24h"
	config.Auth.RateLimitCapacity = 10
	config.Auth.RateLimitRefillPerMin = 10

	config.Storage.Backend = StorageLocal
	config.Storage.Path = "uploads"
	config.Storage.ResumeDir = "resumes"
	config.Storage.MaxResumeBytes = 5 << 20

	config.MinIO.Bucket = "resumes"
	config.MinIO.Region = "us-east-1"

	config.RabbitMQ.Exchange = "placement.events"

	config.SMTP.Port = 587
	config.SMTP.FromName = "Placement Cell"
	config.SMTP.BaseURL = "http://localhost:3000"

	config.Scheduler.Enabled = true
	config.Scheduler.OrphanSweepSpec = "@every 1h"
	config.Scheduler.OrphanGrace = "1h"
	config.Scheduler.TokenPurgeSpec = "@daily"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	for name, value := range map[string]string{
		"JWT expiration":          config.JWT.Expiration,
		"verification token TTL":  config.Auth.VerificationTokenTTL,
		"orphan grace period":     config.Scheduler.OrphanGrace,
		"connection max lifetime": config.Database.ConnMaxLifetime,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	switch config.Storage.Backend {
	case StorageLocal:
	case StorageMinIO:
		if config.MinIO.Endpoint == "" {
			return fmt.Errorf("minio endpoint is required for the minio storage backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", config.Storage.Backend)
	}

	if config.Storage.MaxResumeBytes <= 0 {
		return fmt.Errorf("max resume size must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

