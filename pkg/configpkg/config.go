// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver       string        `mapstructure:"DB_DRIVER"`
	DBSource       string        `mapstructure:"DB_SOURCE"`
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	KafkaBrokers   string        `mapstructure:"KAFKA_BROKERS"`
	LockWaitBudget time.Duration `mapstructure:"LOCK_WAIT_BUDGET"`
	LogAppendRetry int           `mapstructure:"LOG_APPEND_RETRY"`
	Environment    string        `mapstructure:"GO_ENV"`
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

// Brokers splits the KAFKA_BROKERS value into broker addresses.
// An empty value disables event publishing.
func (c Config) Brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}

	return strings.Split(c.KafkaBrokers, ",")
}
