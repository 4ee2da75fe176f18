package config

import (
	"fmt"
	"os"
	"path/filepath"

	"catalogxl/internal/logger"

	"github.com/BurntSushi/toml"
)

const DefaultPath = "configs/config.toml"

type Config struct {
	Convert ConvertConfig `toml:"convert"`
	Picker  PickerConfig  `toml:"picker"`
	Filter  FilterConfig  `toml:"filter"`
}

type ConvertConfig struct {
	Rules           string   `toml:"rules"`
	HeadingDenylist []string `toml:"heading_denylist"`
}

type PickerConfig struct {
	StartDirectory string `toml:"start_directory"`
	PageSize       int    `toml:"page_size"`
}

type FilterConfig struct {
	NameColumn   string `toml:"name_column"`
	OutputSuffix string `toml:"output_suffix"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Rules:           "v2",
			HeadingDenylist: []string{"características", "especificações", "detalhes"},
		},
		Picker: PickerConfig{
			StartDirectory: ".",
			PageSize:       15,
		},
		Filter: FilterConfig{
			NameColumn:   "Nome",
			OutputSuffix: "_FILTRADO.xlsx",
		},
	}
}

// LoadConfig loads configuration from the specified config file path,
// creating a default file if none exists
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		defaultConfig := Default()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
	}

	config.applyDefaults()

	logger.Debug("Loaded configuration", "path", configPath, "rules", config.Convert.Rules)
	return &config, nil
}

// applyDefaults fills fields left empty in the file. An explicitly empty
// heading_denylist is kept so the v1 filter can be switched off.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Convert.Rules == "" {
		c.Convert.Rules = defaults.Convert.Rules
	}
	if c.Convert.HeadingDenylist == nil {
		c.Convert.HeadingDenylist = defaults.Convert.HeadingDenylist
	}
	if c.Picker.StartDirectory == "" {
		c.Picker.StartDirectory = defaults.Picker.StartDirectory
	}
	if c.Picker.PageSize <= 0 {
		c.Picker.PageSize = defaults.Picker.PageSize
	}
	if c.Filter.NameColumn == "" {
		c.Filter.NameColumn = defaults.Filter.NameColumn
	}
	if c.Filter.OutputSuffix == "" {
		c.Filter.OutputSuffix = defaults.Filter.OutputSuffix
	}
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
