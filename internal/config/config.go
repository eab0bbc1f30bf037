// Package config loads the dremcat workflow configuration from YAML.
package config

import (
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/dremcat/internal/dremio"
	"github.com/koustreak/dremcat/internal/errs"
)

// Config is the root of the workflow file.
type Config struct {
	// Service is the catalog-side name of the Dremio service being
	// ingested. Used for fully qualified names and snapshot paths.
	Service string `yaml:"service"`

	Connection Connection `yaml:"connection"`
	Filter     Filter     `yaml:"filter"`
	Log        Log        `yaml:"log"`
	Export     Export     `yaml:"export"`
	Server     Server     `yaml:"server"`
}

// Connection carries the flat option map handed to the engine driver.
type Connection struct {
	// Options must contain username, password and hostPort; other keys
	// pass through to the driver.
	Options map[string]string `yaml:"options"`

	// Database pre-selects a single database and disables enumeration.
	Database string `yaml:"database"`
}

// Filter configures database inclusion/exclusion.
type Filter struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`

	// UseFqnForFiltering matches patterns against
	// "<service>.<database>" instead of the bare database name.
	UseFqnForFiltering bool `yaml:"useFqnForFiltering"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Export configures the optional snapshot sink.
type Export struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

// Server configures the optional status endpoint.
type Server struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads and validates a workflow file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConfig, "cannot read config file "+path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.Wrap(errs.ErrKindConfig, "cannot parse config file "+path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Service == "" {
		return errs.New(errs.ErrKindConfig, "service name is required")
	}
	if len(c.Connection.Options) == 0 {
		return errs.New(errs.ErrKindConfig, "connection options are required")
	}
	// Required option presence is checked by resolving the URL; a
	// missing username/password/hostPort fails here, before any query.
	if _, err := c.Options().URL(); err != nil {
		return err
	}
	if c.Export.Enabled {
		if c.Export.Endpoint == "" || c.Export.Bucket == "" {
			return errs.New(errs.ErrKindConfig, "export requires endpoint and bucket")
		}
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		return errs.New(errs.ErrKindConfig, "server requires addr")
	}
	return nil
}

// Options returns the connection options as the engine layer's type.
func (c *Config) Options() dremio.Options {
	return dremio.Options(c.Connection.Options)
}
