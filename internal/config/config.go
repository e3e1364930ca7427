// Package config handles the XDG configuration directory and the layered
// dashboard settings (defaults, config.toml, environment, flags).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Backend names accepted in the "backend" setting.
const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Defaults.
const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultOwnerID = "1"
	DefaultListID  = "@default"
	DefaultTimeout = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Backend selects the remote task service: "rest" or "googletasks".
	Backend string `toml:"backend"`

	// OwnerID is stamped on every task created by this client.
	OwnerID string `toml:"owner_id"`

	// Timeout bounds every remote call, e.g. "5s".
	Timeout string `toml:"timeout"`

	REST        RESTConfig        `toml:"rest"`
	GoogleTasks GoogleTasksConfig `toml:"googletasks"`
	Log         LogConfig         `toml:"log"`
}

// RESTConfig configures the JSON REST backend.
type RESTConfig struct {
	BaseURL string `toml:"base_url"`
}

// GoogleTasksConfig configures the Google Tasks backend.
type GoogleTasksConfig struct {
	ListID string `toml:"list_id"`
}

// LogConfig configures console logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// New creates a Config with defaults and the default or specified config
// directory. It does not read config.toml; see Load.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	setDefaults(cfg)
	return cfg, nil
}

// Load creates a Config and layers config.toml and the environment over the
// defaults. A missing config.toml is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if cfg.HasConfigFile() {
		if _, err := toml.DecodeFile(cfg.ConfigPath(), cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", cfg.ConfigPath(), err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Backend = BackendREST
	cfg.OwnerID = DefaultOwnerID
	cfg.Timeout = DefaultTimeout.String()
	cfg.REST.BaseURL = DefaultBaseURL
	cfg.GoogleTasks.ListID = DefaultListID
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TODO_BASE_URL"); v != "" {
		cfg.REST.BaseURL = v
	}
	if v := os.Getenv("TODO_OWNER_ID"); v != "" {
		cfg.OwnerID = v
	}
	if v := os.Getenv("TODO_LIST_ID"); v != "" {
		cfg.GoogleTasks.ListID = v
	}
	if v := os.Getenv("TODO_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendREST:
		if strings.TrimSpace(c.REST.BaseURL) == "" {
			return errors.New("rest.base_url is empty")
		}
	case BackendGoogleTasks:
		if strings.TrimSpace(c.GoogleTasks.ListID) == "" {
			return errors.New("googletasks.list_id is empty")
		}
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	return nil
}

// RequestTimeout returns the per-call timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return d, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasConfigFile checks if config.toml exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
