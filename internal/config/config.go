package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/kelseyhightower/envconfig"

	"github.com/quocvuong92/remote-hub/internal/constants"
	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/settings"
)

// EnvPrefix is prepended to every environment variable name, e.g. REMOTE_HUB_API_KEY.
const EnvPrefix = "REMOTE_HUB"

// Defaults - re-exported from constants for convenience
const (
	DefaultListenAddr    = constants.DefaultListenAddr
	DefaultModel         = constants.DefaultModel
	DefaultMaxUploadSize = constants.DefaultMaxUploadSize
	DefaultUploadDelay   = constants.DefaultUploadDelay
	DefaultProvider      = "" // Auto-detect
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Errors
var (
	ErrInvalidProvider   = errors.New("invalid provider. Use 'openai', 'offline', or leave empty to auto-detect")
	ErrEndpointNotFound  = errors.New("description endpoint not found. Set REMOTE_HUB_ENDPOINT or openai.endpoint in the config file")
	ErrAPIKeyNotFound    = errors.New("description API key not found. Set REMOTE_HUB_API_KEY or openai.api_key in the config file")
	ErrInvalidUploadSize = errors.New("invalid max upload size")
	ErrInvalidPort       = errors.New("invalid port, must be between 1 and 65535")
)

// Env holds the values read from REMOTE_HUB_* environment variables.
// Keys are derived with split_words, so there is no fallback to unprefixed
// names such as $HOST or $USERNAME. Pointer fields stay nil when unset.
type Env struct {
	ListenAddr    string         `split_words:"true"`
	Provider      string         `split_words:"true"`
	Endpoint      string         `split_words:"true"`
	APIKey        string         `split_words:"true"`
	Model         string         `split_words:"true"`
	UploadDelay   *time.Duration `split_words:"true"`
	MaxUploadSize string         `split_words:"true"`
	Host          string         `split_words:"true"`
	Port          int            `split_words:"true"`
	Username      string         `split_words:"true"`
	LogLevel      string         `split_words:"true"`
	LogFormat     string         `split_words:"true"`
}

// LoadEnv reads the environment.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &env, nil
}

// Config holds the application configuration
type Config struct {
	// HTTP server
	ListenAddr string

	// Description service
	Provider string // "openai", "offline", or "" (auto-detect)
	Endpoint string
	APIKey   string
	Model    string

	// File panel
	UploadDelay    time.Duration
	uploadDelaySet bool
	MaxUploadSize  string
	MaxUploadBytes int64 // parsed from MaxUploadSize by Validate

	// Initial connection settings of the terminal
	Host     string
	Port     int
	Username string

	// Logging
	LogLevel  string
	LogFormat string

	// ConfigPath, if set, is the only config file consulted and must exist
	ConfigPath string

	// Flags
	Verbose bool
	Render  bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// SetUploadDelay sets the upload delay explicitly, so that zero is kept.
func (c *Config) SetUploadDelay(d time.Duration) {
	c.UploadDelay = d
	c.uploadDelaySet = true
}

// Validate fills unset fields from the environment, then the config file,
// then defaults, and checks the result. Values already set on c (flags) win.
func (c *Config) Validate() error {
	env, err := LoadEnv()
	if err != nil {
		return err
	}
	c.applyEnv(env)

	fileConfig, err := c.loadFile()
	if err != nil {
		return err
	}
	c.ApplyFileConfig(fileConfig)

	c.applyDefaults()

	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	c.APIKey = strings.TrimSpace(c.APIKey)

	switch c.Provider {
	case constants.ProviderOpenAI:
		if c.Endpoint == "" {
			return ErrEndpointNotFound
		}
		if c.APIKey == "" {
			return ErrAPIKeyNotFound
		}
	case constants.ProviderOffline, DefaultProvider:
	default:
		return ErrInvalidProvider
	}

	size, err := units.RAMInBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidUploadSize, c.MaxUploadSize, err)
	}
	if size <= 0 {
		return fmt.Errorf("%w %q: must be positive", ErrInvalidUploadSize, c.MaxUploadSize)
	}
	c.MaxUploadBytes = size

	if c.UploadDelay < 0 {
		c.UploadDelay = 0
	}

	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}

	return nil
}

func (c *Config) applyEnv(env *Env) {
	if env == nil {
		return
	}
	setIfEmpty(&c.ListenAddr, env.ListenAddr)
	setIfEmpty(&c.Provider, env.Provider)
	setIfEmpty(&c.Endpoint, env.Endpoint)
	setIfEmpty(&c.APIKey, env.APIKey)
	setIfEmpty(&c.Model, env.Model)
	setIfEmpty(&c.MaxUploadSize, env.MaxUploadSize)
	setIfEmpty(&c.Host, env.Host)
	setIfEmpty(&c.Username, env.Username)
	setIfEmpty(&c.LogLevel, env.LogLevel)
	setIfEmpty(&c.LogFormat, env.LogFormat)
	if c.Port == 0 {
		c.Port = env.Port
	}
	if !c.uploadDelaySet && env.UploadDelay != nil {
		c.SetUploadDelay(*env.UploadDelay)
	}
}

// loadFile loads ConfigPath when given, otherwise the first config file found.
// Errors in discovered files are logged and ignored.
func (c *Config) loadFile() (*FileConfig, error) {
	if c.ConfigPath != "" {
		return loadConfigFromPath(c.ConfigPath)
	}
	fc, err := LoadConfigFile()
	if err != nil {
		logging.Warn("ignoring config file", logging.Fields{"error": err.Error()})
		return nil, nil
	}
	return fc, nil
}

func (c *Config) applyDefaults() {
	setIfEmpty(&c.ListenAddr, DefaultListenAddr)
	setIfEmpty(&c.Model, DefaultModel)
	setIfEmpty(&c.MaxUploadSize, DefaultMaxUploadSize)
	setIfEmpty(&c.Host, constants.DefaultHost)
	setIfEmpty(&c.Username, constants.DefaultUsername)
	setIfEmpty(&c.LogLevel, DefaultLogLevel)
	setIfEmpty(&c.LogFormat, DefaultLogFormat)
	if c.Port == 0 {
		c.Port = constants.DefaultPort
	}
	if !c.uploadDelaySet {
		c.SetUploadDelay(DefaultUploadDelay)
	}
	if c.Verbose {
		c.LogLevel = "debug"
	}
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// GetChatURL builds the full API URL for chat completions
func (c *Config) GetChatURL() string {
	return fmt.Sprintf("%s/v1/chat/completions", c.Endpoint)
}

// HasRemoteDescriber reports whether an endpoint and key are configured.
func (c *Config) HasRemoteDescriber() bool {
	return c.Endpoint != "" && c.APIKey != ""
}

// Connection returns the initial terminal connection settings.
func (c *Config) Connection() settings.Connection {
	return settings.Connection{Host: c.Host, Port: c.Port, Username: c.Username}
}
