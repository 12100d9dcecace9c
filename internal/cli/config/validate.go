package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}

	if c.UI.Port < 1 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port must be between 1 and 65535, got %d", c.UI.Port)
	}

	switch c.UI.DefaultTheme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.default_theme must be dark or light, got %q", c.UI.DefaultTheme)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if c.UI.ViewIdle < time.Second {
		return fmt.Errorf("ui.view_idle must be at least 1s, got %s", c.UI.ViewIdle)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}
