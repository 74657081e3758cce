// Package config loads the server configuration from a YAML file and fills
// in defaults for anything left unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"
	// DefaultSessionTTL is how long a login session stays valid.
	DefaultSessionTTL = 30 * 24 * time.Hour
	// DefaultTheme is the page theme used when none is configured.
	DefaultTheme = "dark"

	// databaseFileName is the user database file, created at the top of
	// the storage root.
	databaseFileName = "nas.db"
)

// Duration decodes YAML strings like "72h" or "45m" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig holds the storage root and database locations.
type StorageConfig struct {
	Root         string `yaml:"root"`
	DatabaseFile string `yaml:"database_file"`
}

// AuthConfig holds the session settings.
type AuthConfig struct {
	SessionTTL Duration `yaml:"session_ttl"`
}

// WebConfig holds the page asset settings.
type WebConfig struct {
	Dir   string `yaml:"dir"`
	Theme string `yaml:"theme"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Debug bool `yaml:"debug"`
	JSON  bool `yaml:"json"`
}

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Web     WebConfig     `yaml:"web"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		Storage: StorageConfig{
			Root: "data",
		},
		Auth: AuthConfig{
			SessionTTL: Duration(DefaultSessionTTL),
		},
		Web: WebConfig{
			Dir:   "web",
			Theme: DefaultTheme,
		},
	}
}

// Load reads, normalizes and validates the configuration file at path.
// Settings absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Normalize makes paths absolute, fills derived defaults and validates the
// result. It is safe to call again after overriding individual settings.
func (c *Config) Normalize() error {
	if err := validateRequired("server.addr", c.Server.Addr); err != nil {
		return err
	}
	if err := validateRequired("storage.root", c.Storage.Root); err != nil {
		return err
	}
	if err := validateRequired("web.dir", c.Web.Dir); err != nil {
		return err
	}

	absRoot, err := filepath.Abs(c.Storage.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve storage.root: %w", err)
	}
	c.Storage.Root = absRoot

	if c.Storage.DatabaseFile == "" {
		c.Storage.DatabaseFile = filepath.Join(c.Storage.Root, databaseFileName)
	} else {
		absDB, err := filepath.Abs(c.Storage.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to resolve storage.database_file: %w", err)
		}
		c.Storage.DatabaseFile = absDB
	}

	if c.Web.Theme == "" {
		c.Web.Theme = DefaultTheme
	}

	if time.Duration(c.Auth.SessionTTL) <= 0 {
		return validationError{field: "auth.session_ttl", message: "must be greater than zero"}
	}

	return nil
}

// validationError describes a single invalid configuration field.
type validationError struct {
	field   string
	message string
}

func (e validationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.field, e.message)
}

func validateRequired(field, value string) error {
	if value == "" {
		return validationError{field: field, message: "is required"}
	}
	return nil
}
