package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFileExt is the default config file extension.
	DefaultConfigFileExt = "yaml"
)

// ViperManager implements the Manager interface using Viper.
type ViperManager struct {
	v          *viper.Viper
	configPath string
}

// NewManager creates a new configuration manager.
// If configPath is empty, it uses the default path (~/.vaerpub/config.yaml).
func NewManager(configPath string) (*ViperManager, error) {
	v := viper.New()

	v.SetConfigType(DefaultConfigFileExt)

	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".vaerpub", "config.yaml")
	}

	v.SetConfigFile(configPath)

	v.SetEnvPrefix("VAERPUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults first, required for env binding of nested keys
	setDefaults(v)
	bindEnvVars(v)

	return &ViperManager{
		v:          v,
		configPath: configPath,
	}, nil
}

// bindEnvVars explicitly binds environment variables for all config keys.
// Viper's AutomaticEnv doesn't work well with nested keys.
func bindEnvVars(v *viper.Viper) {
	// Build settings
	_ = v.BindEnv("build.command", "VAERPUB_BUILD_COMMAND")
	_ = v.BindEnv("build.args", "VAERPUB_BUILD_ARGS")
	_ = v.BindEnv("build.timeout_seconds", "VAERPUB_BUILD_TIMEOUT_SECONDS")

	// Git settings
	_ = v.BindEnv("git.remote", "VAERPUB_GIT_REMOTE")
	_ = v.BindEnv("git.branch", "VAERPUB_GIT_BRANCH")
	_ = v.BindEnv("git.rebase", "VAERPUB_GIT_REBASE")

	// Publish settings
	_ = v.BindEnv("publish.message_prefix", "VAERPUB_PUBLISH_MESSAGE_PREFIX")
	_ = v.BindEnv("publish.strict", "VAERPUB_PUBLISH_STRICT")
	_ = v.BindEnv("publish.repo_dir", "VAERPUB_PUBLISH_REPO_DIR")

	// UI settings
	_ = v.BindEnv("ui.color_enabled", "VAERPUB_UI_COLOR_ENABLED")
	_ = v.BindEnv("ui.pause", "VAERPUB_UI_PAUSE")

	// History settings
	_ = v.BindEnv("history.enabled", "VAERPUB_HISTORY_ENABLED")
	_ = v.BindEnv("history.max_entries", "VAERPUB_HISTORY_MAX_ENTRIES")
	_ = v.BindEnv("history.file_path", "VAERPUB_HISTORY_FILE_PATH")

	// Serve settings
	_ = v.BindEnv("serve.addr", "VAERPUB_SERVE_ADDR")
	_ = v.BindEnv("serve.dir", "VAERPUB_SERVE_DIR")
}

// setDefaults sets the default configuration values.
func setDefaults(v *viper.Viper) {
	// Build defaults: the historical page builder is a Python script
	// living in the repository root.
	v.SetDefault("build.command", "python3")
	v.SetDefault("build.args", []string{"build_weather_page.py"})
	v.SetDefault("build.timeout_seconds", 600)

	// Git defaults
	v.SetDefault("git.remote", "origin")
	v.SetDefault("git.branch", "main")
	v.SetDefault("git.rebase", true)

	// Publish defaults
	v.SetDefault("publish.message_prefix", "Oppdatering")
	v.SetDefault("publish.strict", false)
	v.SetDefault("publish.repo_dir", "")

	// UI defaults
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.pause", false)

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.max_entries", 500)
	homeDir, _ := os.UserHomeDir()
	v.SetDefault("history.file_path", filepath.Join(homeDir, ".vaerpub", "history.json"))

	// Serve defaults
	v.SetDefault("serve.addr", "localhost:8000")
	v.SetDefault("serve.dir", "")
}

// GetConfigPath returns the path to the configuration file.
func (m *ViperManager) GetConfigPath() string {
	return m.configPath
}

// Load loads the configuration from file, environment, and defaults.
// Priority: flags > env > file > defaults
func (m *ViperManager) Load() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only fail when the error is not "file not found"
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Init creates a new configuration file with default values.
func (m *ViperManager) Init() error {
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", m.configPath)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Chmod(m.configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// Save saves the configuration to file.
func (m *ViperManager) Save(config *Config) error {
	m.v.Set("build", config.Build)
	m.v.Set("git", config.Git)
	m.v.Set("publish", config.Publish)
	m.v.Set("ui", config.UI)
	m.v.Set("history", config.History)
	m.v.Set("serve", config.Serve)

	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set sets a configuration value by key.
// Supports nested keys using dot notation (e.g., "git.remote").
func (m *ViperManager) Set(key string, value string) error {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	existingValue := m.v.Get(key)
	convertedValue, err := convertValue(value, existingValue)
	if err != nil {
		return fmt.Errorf("failed to convert value for key %s: %w", key, err)
	}

	m.v.Set(key, convertedValue)

	if err := m.v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// convertValue converts a string value to the type of the existing value.
func convertValue(value string, existingValue interface{}) (interface{}, error) {
	if existingValue == nil {
		return value, nil
	}

	switch existingValue.(type) {
	case bool:
		return strconv.ParseBool(value)
	case int, int64:
		return strconv.ParseInt(value, 10, 64)
	case float32, float64:
		return strconv.ParseFloat(value, 64)
	case []interface{}, []string:
		return strings.Split(value, ","), nil
	default:
		return value, nil
	}
}

// Get retrieves a configuration value by key.
func (m *ViperManager) Get(key string) (string, error) {
	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	value := m.v.Get(key)
	if value == nil {
		return "", fmt.Errorf("key not found: %s", key)
	}

	return fmt.Sprintf("%v", value), nil
}

// List returns all configuration values as a map.
func (m *ViperManager) List() map[string]interface{} {
	_ = m.v.ReadInConfig()
	return m.v.AllSettings()
}

// SetOverride sets a temporary override for a configuration key.
// Used for command-line flag overrides that shouldn't persist.
func (m *ViperManager) SetOverride(key string, value interface{}) {
	m.v.Set(key, value)
}

// ConfigExists checks if the configuration file exists.
func (m *ViperManager) ConfigExists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}
