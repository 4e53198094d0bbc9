// Package config provides configuration management for vaerpub.
package config

// Config represents the complete vaerpub configuration.
type Config struct {
	Build   BuildConfig   `mapstructure:"build"`
	Git     GitConfig     `mapstructure:"git"`
	Publish PublishConfig `mapstructure:"publish"`
	UI      UIConfig      `mapstructure:"ui"`
	History HistoryConfig `mapstructure:"history"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

// BuildConfig describes the external page-build command.
type BuildConfig struct {
	Command        string   `mapstructure:"command"`
	Args           []string `mapstructure:"args"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

// GitConfig contains version-control settings for the publish flow.
type GitConfig struct {
	Remote string `mapstructure:"remote"`
	Branch string `mapstructure:"branch"`
	Rebase bool   `mapstructure:"rebase"`
}

// PublishConfig contains publish-workflow settings.
type PublishConfig struct {
	// MessagePrefix is prepended to the commit timestamp.
	MessagePrefix string `mapstructure:"message_prefix"`
	// Strict makes build and sync failures abort the run instead of
	// being logged and ignored.
	Strict bool `mapstructure:"strict"`
	// RepoDir is the repository to publish. Empty means the current directory.
	RepoDir string `mapstructure:"repo_dir"`
}

// UIConfig contains terminal output settings.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	// Pause blocks for Enter after a publish run, so output stays visible
	// when the tool is launched from a double-clicked shortcut.
	Pause bool `mapstructure:"pause"`
}

// HistoryConfig contains publish-log settings.
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	FilePath   string `mapstructure:"file_path"`
}

// ServeConfig contains settings for the local site server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
	Dir  string `mapstructure:"dir"`
}

// Manager defines the interface for configuration management.
type Manager interface {
	Load() (*Config, error)
	Save(config *Config) error
	Set(key string, value string) error
	Get(key string) (string, error)
	Init() error
	List() map[string]interface{}
	GetConfigPath() string
}
