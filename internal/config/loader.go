package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"loopauth/pkg/logging"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/loopauth"
	configFileName = "config.yaml"
	envPrefix      = "LOOPAUTH_"
)

// GetDefaultConfigPath returns ~/.config/loopauth.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from configPath, applies LOOPAUTH_ environment
// overrides and validates the result.
func LoadConfig(configPath string) (LoopauthConfig, error) {
	return loadConfig(configPath, env.Options{Prefix: envPrefix})
}

func loadConfig(configPath string, envOpts env.Options) (LoopauthConfig, error) {
	config := GetDefaultConfig()

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Debug("Config", "No config.yaml found at %s, using defaults", configFilePath)
	case err != nil:
		return LoopauthConfig{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return LoopauthConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
		}
		logging.Debug("Config", "Loaded configuration from %s", configFilePath)
	}

	if err := env.ParseWithOptions(&config, envOpts); err != nil {
		return LoopauthConfig{}, fmt.Errorf("error applying environment overrides: %w", err)
	}

	if errs := Validate(config); errs.HasErrors() {
		return LoopauthConfig{}, errs
	}
	return config, nil
}
