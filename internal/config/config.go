package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Discord DiscordConfig `mapstructure:"discord"`
	Storage StorageConfig `mapstructure:"storage"`
	Tenant  TenantConfig  `mapstructure:"tenant"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// ServerConfig holds ops HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DiscordConfig holds Discord API configuration
type DiscordConfig struct {
	Token    string `mapstructure:"token"`
	ClientID string `mapstructure:"client_id"`
}

// StorageConfig holds blob storage configuration
type StorageConfig struct {
	Bucket string `mapstructure:"bucket"`
}

// TenantConfig holds tenant-level defaults
type TenantConfig struct {
	// DefaultTimezone is used for report date parsing when a tenant has not
	// configured its own timezone.
	DefaultTimezone string `mapstructure:"default_timezone"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("tenant.default_timezone", "Asia/Tokyo")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment
	viper.BindEnv("discord.token", "DISCORD_TOKEN")
	viper.BindEnv("discord.client_id", "DISCORD_CLIENT_ID")
	viper.BindEnv("storage.bucket", "GCS_BUCKET_NAME")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required")
	}
	if c.Discord.ClientID == "" {
		return fmt.Errorf("discord.client_id is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	if _, err := time.LoadLocation(c.Tenant.DefaultTimezone); err != nil {
		return fmt.Errorf("tenant.default_timezone is invalid: %w", err)
	}
	return nil
}
