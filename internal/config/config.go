package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Policy PolicyConfig `mapstructure:"policy"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CacheConfig holds the key-value cache configuration. The default path
// ":memory:" keeps the cache non-durable; entries are lost on restart.
type CacheConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// PolicyConfig holds the static configuration files and routing threshold
type PolicyConfig struct {
	Role              string  `mapstructure:"role"`
	PermissionsPath   string  `mapstructure:"permissions_path"`
	RulesPath         string  `mapstructure:"rules_path"`
	RequisitionsPath  string  `mapstructure:"requisitions_path"`
	ApprovalThreshold float64 `mapstructure:"approval_threshold"`
}

// OpenAIConfig holds OpenAI API configuration for the summarizer
type OpenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
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

	// Set defaults
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Cache defaults
	viper.SetDefault("cache.path", ":memory:")
	viper.SetDefault("cache.max_open_conns", 25)
	viper.SetDefault("cache.max_idle_conns", 5)
	viper.SetDefault("cache.conn_max_lifetime", 5*time.Minute)

	// Policy defaults
	viper.SetDefault("policy.role", "manager")
	viper.SetDefault("policy.permissions_path", "configs/permissions.json")
	viper.SetDefault("policy.rules_path", "configs/rules.json")
	viper.SetDefault("policy.requisitions_path", "configs/requisitions.json")
	viper.SetDefault("policy.approval_threshold", 10000)

	// OpenAI defaults
	viper.SetDefault("openai.model", "gpt-3.5-turbo")
	viper.SetDefault("openai.temperature", 0.5)
	viper.SetDefault("openai.max_tokens", 50)
	viper.SetDefault("openai.timeout", 60*time.Second)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Policy.Role == "" {
		return fmt.Errorf("policy.role is required")
	}
	if c.Policy.PermissionsPath == "" {
		return fmt.Errorf("policy.permissions_path is required")
	}
	if c.Policy.RulesPath == "" {
		return fmt.Errorf("policy.rules_path is required")
	}
	if c.Policy.RequisitionsPath == "" {
		return fmt.Errorf("policy.requisitions_path is required")
	}
	if c.Policy.ApprovalThreshold <= 0 {
		return fmt.Errorf("policy.approval_threshold must be positive")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	return nil
}
