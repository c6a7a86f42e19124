package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/ticketdesk/ticketdesk/internal/shared/config"
)

// Config is the root of the application configuration.
type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Hub          sharedConfig.HubConfig          `mapstructure:"hub"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (if present) and TICKETDESK_* environment
// variables on top of the defaults.
func Load(env string) (*Config, error) {
	v := viper.New()
	// Load single config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	// Set environment variable prefix and replacer
	v.SetEnvPrefix("TICKETDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the last loaded configuration, nil before Load.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWT.Secret == "" {
		return errors.New("auth.jwt.secret is required")
	}
	if c.Database.Driver != "mysql" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Hub.SendBuffer <= 0 {
		return errors.New("hub.send_buffer must be positive")
	}
	if c.Hub.PingPeriod >= c.Hub.PongWait {
		return errors.New("hub.ping_period must be shorter than hub.pong_wait")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.ws_rate_limit", 0)

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "ticketdesk")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 30)
	v.SetDefault("logger.compress", true)

	// Auth defaults
	v.SetDefault("auth.jwt.secret", "")
	v.SetDefault("auth.jwt.issuer", "ticketdesk")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Hub defaults
	v.SetDefault("hub.send_buffer", 256)
	v.SetDefault("hub.write_wait", "10s")
	v.SetDefault("hub.pong_wait", "60s")
	v.SetDefault("hub.ping_period", "30s")
	v.SetDefault("hub.max_message_size", 64*1024)
	v.SetDefault("hub.command_timeout", "10s")
	v.SetDefault("hub.evict_on_disconnect", true)
	v.SetDefault("hub.relay_enabled", false)
	v.SetDefault("hub.relay_channel", "ticketdesk:hub:broadcast")
	v.SetDefault("hub.relay_publish_timeout", "1s")

	// Email defaults
	v.SetDefault("notification.email.enabled", false)
	v.SetDefault("notification.email.types", []string{"TicketAssigned", "AdminMessage"})
	v.SetDefault("notification.email.workers", 4)
	v.SetDefault("notification.email.queue_size", 256)
	v.SetDefault("notification.email.smtp.host", "localhost")
	v.SetDefault("notification.email.smtp.port", 1025)
	v.SetDefault("notification.email.smtp.from_address", "noreply@ticketdesk.local")
	v.SetDefault("notification.email.smtp.from_name", "TicketDesk")
}
