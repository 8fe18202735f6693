package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

//go:embed ytlc.toml
var defaultConfigFile []byte

const configName = "ytlc"

// InitConfig loads the config file. A missing file is created from the embedded default.
func InitConfig(file string) error {
	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath(getConfigDir()) // $XDG_CONFIG_HOME takes precedence over config in repo dir
	viper.AddConfigPath("./config")     // in the repo

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", file, err)
		}
		return nil
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// create config file from embedded default file
		if err := viper.ReadConfig(bytes.NewBuffer(defaultConfigFile)); err != nil {
			return fmt.Errorf("error reading default config: %w", err)
		}
		configPath := filepath.Join(getConfigDir(), configName+".toml")
		if err := os.WriteFile(configPath, defaultConfigFile, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing default config: %v\n", err)
		}
	}
	return nil
}

// Default returns the embedded default config file.
func Default() []byte {
	return defaultConfigFile
}

func getConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, _ := os.UserHomeDir()
		configHome = filepath.Join(homeDir, ".config")
	}
	appConfigDir := filepath.Join(configHome, configName)
	os.MkdirAll(appConfigDir, 0755)
	return appConfigDir
}
