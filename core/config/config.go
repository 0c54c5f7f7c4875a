package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"moment-server/core/logger"
	"moment-server/core/media"
	"moment-server/core/server"
	"moment-server/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Media describes the player's file layout under the serving root.
	Media media.Config `mapstructure:"media"`
	// Storage holds configuration for publishing to object storage (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and the .env
// file in path. Variables already set in the environment are overridden by
// the .env file.
func LoadConfig(path string) (*Config, error) {
	// A missing .env file is fine; the environment and defaults still apply.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := registerKeys(v, reflect.TypeOf(Config{}), ""); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks values that decode fine but cannot be used.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > server.MaxPort {
		return fmt.Errorf("SERVER_PORT %d: %w", c.Server.Port, server.ErrInvalidPort)
	}
	for _, ext := range c.Media.Extensions() {
		if strings.TrimSpace(ext) != "" {
			return nil
		}
	}
	return fmt.Errorf("MEDIA_AUDIO_EXTENSIONS must name at least one extension")
}

// registerKeys walks the struct type t and registers every leaf field under
// its mapstructure path: the `default` tag becomes the viper default and the
// key is bound to its SECTION_FIELD environment variable.
func registerKeys(v *viper.Viper, t reflect.Type, prefix string) error {
	for _, field := range reflect.VisibleFields(t) {
		name := field.Tag.Get("mapstructure")
		if name == "" || !field.IsExported() {
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			if err := registerKeys(v, field.Type, key); err != nil {
				return err
			}
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}
