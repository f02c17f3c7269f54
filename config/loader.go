package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TICKTOCK_INPUT
const EnvPrefix = "TICKTOCK"

// Load builds a Config. Priority, lowest first: defaults, the config file at
// path, TICKTOCK_* environment variables (including those set by envFile).
// Empty paths are skipped, so a default run reads no files.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	cfg.Input = strings.ToLower(cfg.Input)
	cfg.Display = strings.ToLower(cfg.Display)

	return &cfg, nil
}

// setDefaults sets a value for every key so AutomaticEnv can override each one
func setDefaults(v *viper.Viper) {
	v.SetDefault("input", InputRaw)
	v.SetDefault("display", DisplayLine)
	v.SetDefault("sound", false)
	v.SetDefault("debug", false)
	v.SetDefault("logDir", "logs")
	v.SetDefault("color", true)
	v.SetDefault("keys.toggle", "")
	v.SetDefault("keys.quit", "")
}
