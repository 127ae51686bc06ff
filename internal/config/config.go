package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverRemote = "remote"
	DriverSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Backend  BackendConfig
	Store    StoreConfig
	Database DatabaseConfig
	Log      LogConfig
	Trip     TripConfig
}

// BackendConfig holds packing service settings.
type BackendConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
}

// StoreConfig selects where trips are persisted.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// TripConfig holds the defaults applied to a new trip draft.
type TripConfig struct {
	AirlineLimitKg float64 `mapstructure:"airline_limit_kg"`
	SuitcaseL      int     `mapstructure:"suitcase_l"`
	TravelClass    string  `mapstructure:"travel_class"`
	Purpose        string  `mapstructure:"purpose"`
}

// APIKeyFromEnv returns the explicit key or, failing that, the value of the
// configured environment variable.
func (b BackendConfig) APIKeyFromEnv() string {
	if b.APIKey != "" {
		return b.APIKey
	}
	if b.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(b.APIKeyEnv)
}

// Path returns the config file location: $PACKIT_CONFIG or
// ~/.config/packit/config.toml.
func Path() string {
	if p := os.Getenv("PACKIT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "packit", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix PACKIT_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("backend.base_url", "http://localhost:8080")
	v.SetDefault("backend.timeout", "60s")
	v.SetDefault("backend.api_key_env", "PACKIT_API_KEY")
	v.SetDefault("backend.api_key", "")
	v.SetDefault("store.driver", DriverRemote)
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "packit", "packit.db"))
	v.SetDefault("log.path", filepath.Join(home, ".cache", "packit", "packit.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("trip.airline_limit_kg", 23.0)
	v.SetDefault("trip.suitcase_l", 40)
	v.SetDefault("trip.travel_class", "Economy")
	v.SetDefault("trip.purpose", "Vacation")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("PACKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case DriverRemote, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown store.driver %q", c.Store.Driver)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// The API key is never written; it belongs in the environment or the secrets store.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.base_url", cfg.Backend.BaseURL)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())
	v.Set("backend.api_key_env", cfg.Backend.APIKeyEnv)
	v.Set("store.driver", cfg.Store.Driver)
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("trip.airline_limit_kg", cfg.Trip.AirlineLimitKg)
	v.Set("trip.suitcase_l", cfg.Trip.SuitcaseL)
	v.Set("trip.travel_class", cfg.Trip.TravelClass)
	v.Set("trip.purpose", cfg.Trip.Purpose)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
