package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix           = "FITSYNC"
	defaultAPIBaseURL   = "http://localhost:3000/api"
	defaultDatabasePath = "healthfit.db"
	defaultLogLevel     = "info"
	defaultDeviceName   = "device"
	defaultHTTPTimeout  = 15 * time.Second
)

// AppConfig captures runtime configuration for the sync engine.
type AppConfig struct {
	APIBaseURL   string
	APIToken     string
	DatabasePath string
	UserID       string
	DeviceName   string
	LogLevel     string
	HTTPTimeout  time.Duration
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("api.base_url", defaultAPIBaseURL)
	configViper.SetDefault("api.timeout", defaultHTTPTimeout)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("device.name", defaultDeviceName)
	configViper.SetDefault("log.level", defaultLogLevel)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		APIBaseURL:   configViper.GetString("api.base_url"),
		APIToken:     configViper.GetString("api.token"),
		DatabasePath: configViper.GetString("database.path"),
		UserID:       configViper.GetString("user.id"),
		DeviceName:   configViper.GetString("device.name"),
		LogLevel:     configViper.GetString("log.level"),
		HTTPTimeout:  configViper.GetDuration("api.timeout"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(c.APIBaseURL)); err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user.id is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	return nil
}
