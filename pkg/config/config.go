package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Hive      HiveConfig
	Wallet    WalletConfig
	Redis     RedisConfig
	Server    ServerConfig
	Feed      FeedConfig
	Platform  PlatformConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// HiveConfig holds blockchain gateway configuration
type HiveConfig struct {
	URL       string
	Timeout   time.Duration
	RateEvery time.Duration // minimum spacing between RPC requests
}

// WalletConfig holds wallet bridge configuration
type WalletConfig struct {
	URL     string
	Timeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds HTTP gateway configuration
type ServerConfig struct {
	Port int
	Host string
}

// FeedConfig holds feed cache and pagination configuration
type FeedConfig struct {
	Tag      string
	Limit    int
	CacheTTL time.Duration
	PageSize int
}

// PlatformConfig holds platform-level constants
type PlatformConfig struct {
	App       string // app identifier written into post metadata
	AdAccount string // account receiving ad payments
	Category  string // default parent permlink category tag
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("TRAVELO")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.travelo")
	viper.AddConfigPath("/etc/travelo")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Hive: HiveConfig{
			URL:       getString("hive_url", "https://api.hive.blog"),
			Timeout:   getDuration("hive_timeout", 30*time.Second),
			RateEvery: getDuration("hive_rate_every", 200*time.Millisecond),
		},
		Wallet: WalletConfig{
			URL:     getString("wallet_url", ""),
			Timeout: getDuration("wallet_timeout", 90*time.Second),
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
		},
		Server: ServerConfig{
			Port: getInt("http_server_port", 8080),
			Host: getString("http_server_host", "127.0.0.1"),
		},
		Feed: FeedConfig{
			Tag:      getString("feed_tag", "travel"),
			Limit:    getInt("feed_limit", 20),
			CacheTTL: getDuration("feed_cache_ttl", 5*time.Minute),
			PageSize: getInt("feed_page_size", 9),
		},
		Platform: PlatformConfig{
			App:       getString("platform_app", "hive-travel"),
			AdAccount: getString("ad_account", "abinsaji4"),
			Category:  getString("platform_category", "hive-travel"),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", true),
			JaegerURL:         getString("jaeger_url", "http://localhost:14268/api/traces"),
			PrometheusEnabled: getBool("prometheus_enabled", true),
			ServiceName:       getString("service_name", "travelo"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("hive_url", "https://api.hive.blog")
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("http_server_host", "127.0.0.1")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("feed_tag", "travel")
	viper.SetDefault("feed_limit", 20)
	viper.SetDefault("feed_cache_ttl", 5*time.Minute)
	viper.SetDefault("feed_page_size", 9)
	viper.SetDefault("platform_app", "hive-travel")
	viper.SetDefault("platform_category", "hive-travel")
	viper.SetDefault("ad_account", "abinsaji4")
	viper.SetDefault("telemetry_enabled", true)
	viper.SetDefault("prometheus_enabled", true)
	viper.SetDefault("service_name", "travelo")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("TRAVELO_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("TRAVELO_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("TRAVELO_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	if val := os.Getenv("TRAVELO_" + toEnvKey(key)); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	// Convert snake_case to UPPER_SNAKE_CASE
	result := ""
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += "_"
		}
		if r == '-' || r == '_' {
			result += "_"
		} else {
			result += string(r)
		}
	}
	return result
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Hive.URL == "" {
		return fmt.Errorf("hive_url is required")
	}
	if c.Feed.Limit <= 0 || c.Feed.Limit > 100 {
		return fmt.Errorf("feed_limit must be between 1 and 100")
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("feed_page_size must be positive")
	}
	if c.Feed.CacheTTL <= 0 {
		return fmt.Errorf("feed_cache_ttl must be positive")
	}
	if c.Platform.AdAccount == "" {
		return fmt.Errorf("ad_account is required")
	}
	return nil
}
