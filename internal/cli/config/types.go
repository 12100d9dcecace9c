// Package config provides configuration management for the formbot CLI.
package config

import "time"

// APIConfig holds settings for the formbot resource service.
type APIConfig struct {
	BaseURL string        `koanf:"base_url" yaml:"base_url"`
	Token   string        `koanf:"token" yaml:"token,omitempty"`
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
}

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port         int           `koanf:"port" yaml:"port"`
	AutoOpen     bool          `koanf:"auto_open" yaml:"auto_open"`
	Watch        bool          `koanf:"watch" yaml:"watch"`
	DefaultTheme string        `koanf:"default_theme" yaml:"default_theme"`
	WorkspaceURL string        `koanf:"workspace_url" yaml:"workspace_url"`
	AuthURL      string        `koanf:"auth_url" yaml:"auth_url"`
	ViewIdle     time.Duration `koanf:"view_idle" yaml:"view_idle"`
}

// SessionConfig holds settings for the signed session cookie.
type SessionConfig struct {
	Secret string `koanf:"secret" yaml:"secret"`
	// MaxAge is in seconds.
	MaxAge int `koanf:"max_age" yaml:"max_age"`
}

// LogConfig selects the slog handler built by the root command.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// Config holds all CLI configuration options.
type Config struct {
	API          APIConfig     `koanf:"api" yaml:"api"`
	UI           UIConfig      `koanf:"ui" yaml:"ui"`
	Session      SessionConfig `koanf:"session" yaml:"session"`
	Log          LogConfig     `koanf:"log" yaml:"log"`
	OutputFormat string        `koanf:"output" yaml:"output"`
	Verbose      bool          `koanf:"verbose" yaml:"-"`
}

// Default configuration values.
const (
	DefaultBaseURL       = "http://localhost:4000"
	DefaultTimeout       = 10 * time.Second
	DefaultPort          = 8765
	DefaultTheme         = "dark"
	DefaultWorkspaceURL  = "/workspace"
	DefaultViewIdle      = 2 * time.Minute
	DefaultSessionSecret = "formbot-dev-secret-change-in-production" //nolint:gosec
	DefaultSessionMaxAge = 86400 * 30
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		UI: UIConfig{
			Port:         DefaultPort,
			AutoOpen:     true,
			Watch:        false,
			DefaultTheme: DefaultTheme,
			WorkspaceURL: DefaultWorkspaceURL,
			ViewIdle:     DefaultViewIdle,
		},
		Session: SessionConfig{
			Secret: DefaultSessionSecret,
			MaxAge: DefaultSessionMaxAge,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		OutputFormat: DefaultOutput,
	}
}
