package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from ATLAS_-prefixed environment variables, with the
// environment taking precedence. The result is validated before being
// returned.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep local development runnable with only the secrets set.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.email_token_lifetime_minutes", 1440)
	v.SetDefault("search.poi_index", "geonames")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Running without a config file is fine; the environment carries
		// everything in deployed setups.
	}

	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind
	// the keys that have no default explicitly.
	for _, key := range []string{
		"server.front_url",
		"database.url",
		"auth.jwt_secret",
		"auth.bcrypt_cost",
		"aws.region",
		"aws.access_key_id",
		"aws.secret_access_key",
		"aws.s3_bucket",
		"aws.system_email",
		"search.addresses",
		"search.cloud_id",
		"search.username",
		"search.password",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
