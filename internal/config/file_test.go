package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// createTempConfigFile creates a temporary config file for testing
func createTempConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	configDir := filepath.Join(dir, ".remote-hub")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	return configPath
}

// =============================================================================
// loadConfigFromPath Tests
// =============================================================================

func TestLoadConfigFromPath_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
listen_addr: ":9090"
provider: openai
model: gpt-4o

openai:
  endpoint: https://api.example.com
  api_key: test-key

uploads:
  delay: 2s
  max_size: 10MB

connection:
  host: devbox
  port: 2222
  username: alice

log:
  level: debug
  format: json
`
	configPath := createTempConfigFile(t, tmpDir, configContent)

	cfg, err := loadConfigFromPath(configPath)
	if err != nil {
		t.Fatalf("loadConfigFromPath() error = %v", err)
	}

	if cfg.ListenAddr != ":9090" || cfg.Provider != "openai" || cfg.Model != "gpt-4o" {
		t.Errorf("top-level fields = %+v", cfg)
	}
	if cfg.OpenAI == nil || cfg.OpenAI.Endpoint != "https://api.example.com" || cfg.OpenAI.APIKey != "test-key" {
		t.Errorf("OpenAI = %+v", cfg.OpenAI)
	}
	if cfg.Uploads == nil || cfg.Uploads.Delay == nil || *cfg.Uploads.Delay != 2*time.Second {
		t.Errorf("Uploads.Delay = %+v", cfg.Uploads)
	}
	if cfg.Uploads.MaxSize != "10MB" {
		t.Errorf("Uploads.MaxSize = %q", cfg.Uploads.MaxSize)
	}
	if cfg.Connection == nil || cfg.Connection.Host != "devbox" || cfg.Connection.Port != 2222 || cfg.Connection.Username != "alice" {
		t.Errorf("Connection = %+v", cfg.Connection)
	}
	if cfg.Log == nil || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadConfigFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := createTempConfigFile(t, tmpDir, "connection: [unclosed")

	if _, err := loadConfigFromPath(configPath); err == nil {
		t.Error("loadConfigFromPath() should fail on invalid YAML")
	}
}

func TestLoadConfigFromPath_NotFound(t *testing.T) {
	if _, err := loadConfigFromPath("/nonexistent/path/config.yaml"); err == nil {
		t.Error("loadConfigFromPath() should fail for a missing file")
	}
}

func TestLoadConfigFromPath_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := createTempConfigFile(t, tmpDir, "")

	cfg, err := loadConfigFromPath(configPath)
	if err != nil {
		t.Fatalf("loadConfigFromPath() error = %v", err)
	}
	if cfg.OpenAI != nil || cfg.Connection != nil {
		t.Errorf("empty file should produce empty config, got %+v", cfg)
	}
}

func TestLoadConfigFile_NoConfigFile(t *testing.T) {
	runInTempDir(t)

	cfg, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg == nil || cfg.Provider != "" {
		t.Errorf("LoadConfigFile() = %+v, want empty config", cfg)
	}
}

func TestLoadConfigFile_CurrentDirectory(t *testing.T) {
	dir := runInTempDir(t)
	createTempConfigFile(t, dir, "provider: offline\n")

	cfg, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.Provider != "offline" {
		t.Errorf("Provider = %q, want offline", cfg.Provider)
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) == 0 {
		t.Fatal("GetConfigPaths() returned no paths")
	}
	if paths[0] != filepath.Join(".", ".remote-hub", ConfigFileName) {
		t.Errorf("first path = %q, want current directory", paths[0])
	}
	for _, p := range paths {
		if !strings.HasSuffix(p, filepath.Join("remote-hub", ConfigFileName)) {
			t.Errorf("path %q should end in remote-hub/%s", p, ConfigFileName)
		}
	}
}

// =============================================================================
// ApplyFileConfig Tests
// =============================================================================

func TestConfig_ApplyFileConfig_Nil(t *testing.T) {
	cfg := &Config{Host: "keep"}
	cfg.ApplyFileConfig(nil)
	if cfg.Host != "keep" {
		t.Errorf("Host = %q, nil file config must not change anything", cfg.Host)
	}
}

func TestConfig_ApplyFileConfig_FillsEmpty(t *testing.T) {
	delay := 3 * time.Second
	cfg := NewConfig()
	cfg.ApplyFileConfig(&FileConfig{
		Provider: "openai",
		OpenAI:   &OpenAIConfig{Endpoint: "https://api.example.com", APIKey: "k"},
		Uploads:  &UploadsConfig{Delay: &delay, MaxSize: "1MB"},
		Log:      &LogConfig{Level: "warn"},
	})

	if cfg.Provider != "openai" || cfg.Endpoint != "https://api.example.com" || cfg.APIKey != "k" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.UploadDelay != delay || cfg.MaxUploadSize != "1MB" {
		t.Errorf("uploads = %v / %q", cfg.UploadDelay, cfg.MaxUploadSize)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestConfig_ApplyFileConfig_NoOverwrite(t *testing.T) {
	delay := 3 * time.Second
	cfg := &Config{Endpoint: "https://flag.example.com", Port: 2022}
	cfg.SetUploadDelay(time.Second)

	cfg.ApplyFileConfig(&FileConfig{
		OpenAI:     &OpenAIConfig{Endpoint: "https://file.example.com"},
		Uploads:    &UploadsConfig{Delay: &delay},
		Connection: &ConnectionConfig{Port: 2200},
	})

	if cfg.Endpoint != "https://flag.example.com" {
		t.Errorf("Endpoint = %q, should not be overwritten", cfg.Endpoint)
	}
	if cfg.UploadDelay != time.Second {
		t.Errorf("UploadDelay = %v, should not be overwritten", cfg.UploadDelay)
	}
	if cfg.Port != 2022 {
		t.Errorf("Port = %d, should not be overwritten", cfg.Port)
	}
}

// =============================================================================
// CreateDefaultConfigFile Tests
// =============================================================================

func TestCreateDefaultConfigFile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	setEnvForTest(t, "HOME", tmpDir)
	setEnvForTest(t, "XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

	path, err := CreateDefaultConfigFile()
	if err != nil {
		t.Fatalf("CreateDefaultConfigFile() error = %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", path)
	}

	// The template is fully commented out and must parse to an empty config
	cfg, err := loadConfigFromPath(path)
	if err != nil {
		t.Fatalf("template should be valid YAML: %v", err)
	}
	if cfg.Provider != "" || cfg.OpenAI != nil {
		t.Errorf("template should not set values, got %+v", cfg)
	}
}

func TestCreateDefaultConfigFile_AlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()

	configDir := filepath.Join(tmpDir, "remote-hub")
	os.MkdirAll(configDir, 0755)
	existingPath := filepath.Join(configDir, ConfigFileName)
	os.WriteFile(existingPath, []byte("existing content"), 0644)

	setEnvForTest(t, "XDG_CONFIG_HOME", tmpDir)

	_, err := CreateDefaultConfigFile()
	if err == nil {
		t.Error("CreateDefaultConfigFile() should return error when file exists")
	}
}
