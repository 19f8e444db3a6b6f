package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/sectionnav/internal/model"
)

// cliConfig holds all sectionnav configuration.
type cliConfig struct {
	Document           string `mapstructure:"document"`
	SidebarWidth       int    `mapstructure:"sidebar-width"`
	Mouse              bool   `mapstructure:"mouse"`
	ReverseScrollWheel bool   `mapstructure:"reverse-scroll-wheel"`
	MarkdownStyle      string `mapstructure:"markdown-style"`
	LogFile            string `mapstructure:"log-file"`
	Verbose            bool   `mapstructure:"verbose"`
}

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sectionnav"), nil
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	dir, err := defaultConfigDir()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetEnvPrefix("SECTIONNAV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("document", "")
	v.SetDefault("sidebar-width", model.DefaultSidebarWidth)
	v.SetDefault("mouse", true)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("markdown-style", model.DefaultMarkdownStyle)
	v.SetDefault("log-file", filepath.Join(dir, model.DefaultLogFileName))
	v.SetDefault("verbose", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(dir, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
