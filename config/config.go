/*
Package config loads application configuration with viper.

SOURCES (highest precedence first):
  1. Environment variables, prefixed STEINALYTICS_ (e.g. STEINALYTICS_PORT)
  2. An optional config file (YAML/JSON/TOML, any format viper reads)
  3. Built-in defaults

The VIP rule document (vipcodes.json) is NOT read here: it is loaded once
per validation run by the journal package, per its lifecycle contract.
*/
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds all runtime settings for the server.
type Config struct {
	Port        int    `mapstructure:"port"`
	DBPath      string `mapstructure:"db_path"`
	ExportDir   string `mapstructure:"export_dir"`
	RulesPath   string `mapstructure:"rules_path"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
	LogLevel    string `mapstructure:"log_level"`
}

// Load reads configuration from defaults, an optional file, and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "reports.db")
	v.SetDefault("export_dir", "exports")
	v.SetDefault("rules_path", "configs/vipcodes.json")
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("STEINALYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %q", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}
