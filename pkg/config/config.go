package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	// Path of the SQLite database file (created on first run)
	DBPath string `mapstructure:"db_path"`

	// Logging settings
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "pretty" or "json"

	// Base rate used by the price calculator
	BasePricePerDay float64 `mapstructure:"base_price_per_day"`

	// When true, a client holding an active assignment cannot be deleted
	ProtectAssignedClients bool `mapstructure:"protect_assigned_clients"`
}

const (
	DefaultConfigPath      = "fitclub.yml"
	DefaultDBPath          = "fitclub.sqlite3"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "pretty"
	DefaultBasePricePerDay = 100.0
)

// Load reads the config file at configPath (DefaultConfigPath when empty) and
// applies FITCLUB_* environment overrides. A missing file is not an error; the
// defaults describe a fully working local setup.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("db_path", DefaultDBPath)
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("log_format", DefaultLogFormat)
	viper.SetDefault("base_price_per_day", DefaultBasePricePerDay)
	viper.SetDefault("protect_assigned_clients", true)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FITCLUB")

	if err := viper.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.BasePricePerDay <= 0 {
		return fmt.Errorf("base_price_per_day must be positive")
	}

	return nil
}
