package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration of the coordinator.
type Config struct {
	Server   Server   `mapstructure:"server" json:"server"`
	Clock    Clock    `mapstructure:"clock" json:"clock"`
	Ledger   Ledger   `mapstructure:"ledger" json:"ledger"`
	Currency Currency `mapstructure:"currency" json:"currency"`
}

type Server struct {
	Port string `mapstructure:"port" json:"port"`
}

type Clock struct {
	TickInterval      time.Duration `mapstructure:"tick_interval" json:"tick_interval"`
	ExtensionWindow   time.Duration `mapstructure:"extension_window" json:"extension_window"`
	ExtensionDuration time.Duration `mapstructure:"extension_duration" json:"extension_duration"`
}

type Ledger struct {
	LockWait time.Duration `mapstructure:"lock_wait" json:"lock_wait"`
}

// Currency holds the reference currency and the seed rate table, each
// rate expressed relative to the reference.
type Currency struct {
	Reference string             `mapstructure:"reference" json:"reference"`
	Rates     map[string]float64 `mapstructure:"rates" json:"rates"`
}

// Load reads configuration from the given file (optional) and the
// RAC_* environment, falling back to built-in defaults.
func Load(configFilePath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", ":8080")
	v.SetDefault("clock.tick_interval", time.Second)
	v.SetDefault("clock.extension_window", 3*time.Minute)
	v.SetDefault("clock.extension_duration", 3*time.Minute)
	v.SetDefault("ledger.lock_wait", 2*time.Second)
	v.SetDefault("currency.reference", "USD")
	v.SetDefault("currency.rates", map[string]float64{"USD": 1})

	v.SetEnvPrefix("RAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFilePath != "" {
		v.SetConfigFile(configFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFilePath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
