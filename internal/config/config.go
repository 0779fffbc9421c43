package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPageSize is the number of stories shown per page when the
// config does not specify one.
const DefaultPageSize = 30

// Config holds the application configuration
type Config struct {
	DefaultFeed          string `json:"default_feed,omitempty"`          // Feed shown on startup (e.g., "topstories")
	PageSize             int    `json:"page_size,omitempty"`             // Stories per page (0 means DefaultPageSize)
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications when the assistant finishes in the background
	ZenMode              bool   `json:"zen_mode,omitempty"`              // Start reading view in zen mode
	WelcomeShown         bool   `json:"welcome_shown,omitempty"`         // Whether welcome modal has been shown

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pastel"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Validate loaded config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative, got %d", c.PageSize)
	}
	if c.PageSize != 0 && (c.PageSize < 10 || c.PageSize > 100) {
		return fmt.Errorf("page_size must be between 10 and 100, got %d", c.PageSize)
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetDefaultFeed returns the feed shown on startup, or empty string if unset
func (c *Config) GetDefaultFeed() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DefaultFeed
}

// SetDefaultFeed sets the feed shown on startup
func (c *Config) SetDefaultFeed(feed string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DefaultFeed = feed
}

// GetPageSize returns the number of stories per page
func (c *Config) GetPageSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.PageSize == 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// SetPageSize sets the number of stories per page
func (c *Config) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PageSize = size
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetZenMode returns whether the reading view starts in zen mode
func (c *Config) GetZenMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ZenMode
}

// SetZenMode sets whether the reading view starts in zen mode
func (c *Config) SetZenMode(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ZenMode = enabled
}

// HasSeenWelcome returns whether the welcome modal has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome modal as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}
