// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "fanctl"
	configFile = "config.yaml"
)

// ConfigDirEnvVar overrides the platform config directory when set. Used by
// tests and by users who keep dotfiles elsewhere.
const ConfigDirEnvVar = "FANCTL_CONFIG_DIR"

// fileMutex serializes file operations.
var fileMutex sync.Mutex

// GetConfigDir returns the configuration directory for the application:
//   - any platform: $FANCTL_CONFIG_DIR when set
//   - Linux/macOS:  $XDG_CONFIG_HOME/fanctl or $HOME/.config/fanctl
//   - Windows:      %LOCALAPPDATA%\fanctl
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		return dir, nil
	}

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", fmt.Errorf("cannot determine config directory (LOCALAPPDATA not set)")
		}
		return filepath.Join(localAppData, appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// LoadRegistry loads the registry from disk. A missing file yields a new
// default registry, not an error.
func LoadRegistry() (*Registry, error) {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return loadRegistryFromFile(configPath)
}

func loadRegistryFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if registry.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", registry.Version)
	}

	if registry.Fans == nil {
		registry.Fans = make(map[string]*Fan)
	}
	if registry.Preferences == nil {
		registry.Preferences = &Preferences{DiscoverTimeout: 5}
	}
	return &registry, nil
}

// Save writes the registry to disk atomically.
func (r *Registry) Save() error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return r.saveToFile(filepath.Join(configDir, configFile))
}

func (r *Registry) saveToFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# fanctl configuration file
#
# Each fan entry stores the 13-bit handset identity its receiver learned
# during pairing. Deleting an entry does not unpair the receiver; it only
# forgets the identity on this machine.

`)
	data = append(header, data...)

	// Write-then-rename so a crash never leaves a half-written file.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}
