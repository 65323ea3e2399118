package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = "silverstar"
	configFileName = "config.json"
)

// UserConfig is per-user CLI state stored in ~/.config/silverstar/config.json.
// It remembers which restaurant a super admin is currently managing.
type UserConfig struct {
	SelectedRestaurantID   string `json:"selected_restaurant_id"`
	SelectedRestaurantName string `json:"selected_restaurant_name"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file. A missing file reads as an empty
// config.
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// SetSelectedRestaurant updates the selected restaurant and saves the config
func SetSelectedRestaurant(id, name string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.SelectedRestaurantID = id
	cfg.SelectedRestaurantName = name
	return Save(cfg)
}

// GetSelectedRestaurant returns the selected restaurant id and name, both
// empty if none is selected.
func GetSelectedRestaurant() (id, name string, err error) {
	cfg, err := Load()
	if err != nil {
		return "", "", err
	}

	return cfg.SelectedRestaurantID, cfg.SelectedRestaurantName, nil
}
