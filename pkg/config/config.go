// Package config wires viper defaults, environment variables, and the
// optional config file. Values are read with viper getters at the call
// sites that need them.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvProduction selects JSON logging and TLS-ready defaults.
	EnvProduction = "production"

	// EnvDevelopment is the default environment.
	EnvDevelopment = "development"
)

// InitViperConfig sets defaults, binds P256_* environment variables,
// and reads an optional config.yaml from the working directory. A
// missing config file is fine; a malformed one is not.
func InitViperConfig() error {
	viper.SetDefault("environment", EnvDevelopment)
	viper.SetDefault("nats.url", "nats://127.0.0.1:4222")
	viper.SetDefault("service.queue_group", "p256")

	viper.SetEnvPrefix("P256")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
