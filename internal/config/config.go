package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.sonicrc, $XDG_CONFIG_HOME/sonic/config.toml, ~/.config/sonic/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".sonicrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "sonic", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// YouTube
	if v := os.Getenv("SONIC_YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}

	// AI
	if v := os.Getenv("SONIC_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("SONIC_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}

	// Community
	if v := os.Getenv("SONIC_COMMUNITY_BASE_URL"); v != "" {
		cfg.Community.BaseURL = v
	}
	if v := os.Getenv("SONIC_COMMUNITY_API_KEY"); v != "" {
		cfg.Community.APIKey = v
	}

	// Storage
	if v := os.Getenv("SONIC_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}

	// Player
	if v := os.Getenv("SONIC_PLAYER_BINARY"); v != "" {
		cfg.Player.Binary = v
	}

	// Server
	if v := os.Getenv("SONIC_SERVER_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}

	// Defaults
	if v := os.Getenv("SONIC_DEFAULT_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.Volume = i
		}
	}

	// TUI
	if v := os.Getenv("SONIC_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("SONIC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SONIC_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
