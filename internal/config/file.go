package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/remote-hub/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`

	// Description service
	Provider string        `yaml:"provider,omitempty"` // "openai", "offline"
	Model    string        `yaml:"model,omitempty"`
	OpenAI   *OpenAIConfig `yaml:"openai,omitempty"`

	Uploads    *UploadsConfig    `yaml:"uploads,omitempty"`
	Connection *ConnectionConfig `yaml:"connection,omitempty"`
	Log        *LogConfig        `yaml:"log,omitempty"`
}

// OpenAIConfig holds the chat-completions endpoint settings
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// UploadsConfig holds file panel settings
type UploadsConfig struct {
	Delay   *time.Duration `yaml:"delay,omitempty"`
	MaxSize string         `yaml:"max_size,omitempty"` // e.g. "32MB"
}

// ConnectionConfig holds the initial terminal connection settings
type ConnectionConfig struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	paths := GetConfigPaths()

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config
// File config has lower priority than environment variables and CLI flags
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	setIfEmpty(&c.ListenAddr, fc.ListenAddr)
	setIfEmpty(&c.Provider, fc.Provider)
	setIfEmpty(&c.Model, fc.Model)

	if fc.OpenAI != nil {
		setIfEmpty(&c.Endpoint, fc.OpenAI.Endpoint)
		setIfEmpty(&c.APIKey, fc.OpenAI.APIKey)
	}

	if fc.Uploads != nil {
		setIfEmpty(&c.MaxUploadSize, fc.Uploads.MaxSize)
		if !c.uploadDelaySet && fc.Uploads.Delay != nil {
			c.SetUploadDelay(*fc.Uploads.Delay)
		}
	}

	if fc.Connection != nil {
		setIfEmpty(&c.Host, fc.Connection.Host)
		setIfEmpty(&c.Username, fc.Connection.Username)
		if c.Port == 0 {
			c.Port = fc.Connection.Port
		}
	}

	if fc.Log != nil {
		setIfEmpty(&c.LogLevel, fc.Log.Level)
		setIfEmpty(&c.LogFormat, fc.Log.Format)
	}
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# Remote Hub Configuration
# Location: ~/.config/remote-hub/config.yaml

# Address of the web UI and HTTP API
# listen_addr: ":8080"

# Description service: "openai" or "offline" (default: auto-detect)
# provider: openai
# model: gpt-4o-mini

# OpenAI-compatible chat completions endpoint (required if provider: openai)
# openai:
#   endpoint: https://api.openai.com
#   api_key: your-api-key

# File panel
# uploads:
#   delay: 1.5s     # simulated upload time before describing
#   max_size: 32MB  # larger uploads are rejected

# Connection settings shown by the terminal
# connection:
#   host: remote-hub
#   port: 22
#   username: user

# Logging
# log:
#   level: info   # debug, info, warn, error
#   format: text  # text or json
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
