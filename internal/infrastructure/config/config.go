package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "timeclock/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Clock    sharedConfig.ClockConfig    `mapstructure:"clock"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("TIMECLOCK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.min_app_version", "")
	viper.SetDefault("server.trust_proxy_header", false)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "timeclock_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.jwt.secret", "change-me-in-production")
	viper.SetDefault("auth.jwt.access_exp_minutes", 720)

	// Redis defaults
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Clock policy defaults
	viper.SetDefault("clock.timezone", "UTC")
	viper.SetDefault("clock.week_start", "monday")
	viper.SetDefault("clock.token_ttl_hours", 12)
	viper.SetDefault("clock.lunch_minutes", 30)
	viper.SetDefault("clock.drift_flag_minutes", 5)
	viper.SetDefault("clock.idempotency_hours", 24)
	viper.SetDefault("clock.state_replay_hours", 48)

	viper.SetDefault("clock.geofence.site_lat", 0.0)
	viper.SetDefault("clock.geofence.site_lng", 0.0)
	viper.SetDefault("clock.geofence.radius_meters", 150.0)
	viper.SetDefault("clock.geofence.max_accuracy_meters", 200.0)

	viper.SetDefault("clock.wifi.allowlist", []string{})
	viper.SetDefault("clock.wifi.allowlist_disabled", false)
	viper.SetDefault("clock.wifi.bypass_user_ids", []string{})

	viper.SetDefault("clock.rate_limit.burst.max_hits", 5)
	viper.SetDefault("clock.rate_limit.burst.window_ms", 10000)
	viper.SetDefault("clock.rate_limit.sustained.max_hits", 30)
	viper.SetDefault("clock.rate_limit.sustained.window_ms", 600000)
	viper.SetDefault("clock.rate_limit.global_ip.max_hits", 120)
	viper.SetDefault("clock.rate_limit.global_ip.window_ms", 60000)
}
