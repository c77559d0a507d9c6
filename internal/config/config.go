package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Detection DetectionConfig `json:"detection"`
	Storage   StorageConfig   `json:"storage"`
	Alerts    AlertsConfig    `json:"alerts"`
	AWS       AWSConfig       `json:"aws"`
	Session   SessionConfig   `json:"session"`
	Logging   LoggingConfig   `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	DBName         string        `json:"db_name"`
	SSLMode        string        `json:"ssl_mode"`
	MaxConnections int           `json:"max_connections"`
	MaxIdleConns   int           `json:"max_idle_conns"`
	MaxLifetime    time.Duration `json:"max_lifetime"`
}

// DetectionConfig controls the (simulated) detection backend
type DetectionConfig struct {
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	ModelName           string  `json:"model_name"`
}

// StorageConfig controls where result assets are written
type StorageConfig struct {
	ResultsDir  string `json:"results_dir"`
	SampleDir   string `json:"sample_dir"`
	S3Bucket    string `json:"s3_bucket"` // empty disables S3 mirroring
	S3KeyPrefix string `json:"s3_key_prefix"`
}

// AlertsConfig controls scheduled alert rule evaluation
type AlertsConfig struct {
	Enabled      bool   `json:"enabled"`
	CronSpec     string `json:"cron_spec"`
	LookbackMins int    `json:"lookback_mins"`
}

// AWSConfig holds settings for the SNS/SES/S3 clients
type AWSConfig struct {
	Region      string `json:"region"`
	SMSSenderID string `json:"sms_sender_id"`
	EmailFrom   string `json:"email_from"`
}

// SessionConfig holds the anonymous session token settings
type SessionConfig struct {
	Secret string        `json:"secret"`
	TTL    time.Duration `json:"ttl"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           os.Getenv("USER"),
			DBName:         "roadwatch_portal",
			SSLMode:        "disable",
			MaxConnections: 25,
			MaxIdleConns:   5,
		},
		Detection: DetectionConfig{
			ConfidenceThreshold: 0.25,
			ModelName:           "YOLOv8 (Simulation)",
		},
		Storage: StorageConfig{
			ResultsDir: "data/results",
			SampleDir:  "data/sample_images",
		},
		Alerts: AlertsConfig{
			Enabled:      true,
			CronSpec:     "@every 5m",
			LookbackMins: 60,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DATABASE_PORT"); dbPort != "" {
		if p, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = p
		}
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if dir := os.Getenv("RESULTS_DIR"); dir != "" {
		config.Storage.ResultsDir = dir
	}
	if dir := os.Getenv("SAMPLE_DIR"); dir != "" {
		config.Storage.SampleDir = dir
	}
	if bucket := os.Getenv("RESULTS_S3_BUCKET"); bucket != "" {
		config.Storage.S3Bucket = bucket
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		config.AWS.Region = region
	}
	if from := os.Getenv("ALERT_EMAIL_FROM"); from != "" {
		config.AWS.EmailFrom = from
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		config.Session.Secret = secret
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
