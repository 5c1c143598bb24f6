// Package config loads sqlfront CLI configuration.
//
// Values are layered with koanf: built-in defaults, then sqlfront.yaml,
// then SQLFRONT_* environment variables, then explicitly set flags.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/leapstack-labs/sqlfront/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect       string        `koanf:"dialect"`
	TargetDialect string        `koanf:"target_dialect"`
	OutputFormat  string        `koanf:"output"`
	Verbose       bool          `koanf:"verbose"`
	Jobs          int           `koanf:"jobs"`
	Verify        *VerifyConfig `koanf:"verify"`
	Serve         ServeConfig   `koanf:"serve"`

	// ProjectRoot is the directory of the config file used, or the
	// working directory when there is none.
	ProjectRoot string `koanf:"-"`
}

// VerifyConfig selects the database statements are verified against.
type VerifyConfig struct {
	Type    string            `koanf:"type"`
	DSN     string            `koanf:"dsn"`
	Path    string            `koanf:"path"`
	Options map[string]string `koanf:"options"`
}

// AdapterConfig converts v for adapter.Open.
func (v *VerifyConfig) AdapterConfig() core.AdapterConfig {
	return core.AdapterConfig{
		Type:    v.Type,
		Path:    v.Path,
		DSN:     v.DSN,
		Options: v.Options,
	}
}

// ServeConfig holds HTTP service settings.
type ServeConfig struct {
	Addr string `koanf:"addr"`
	Port int    `koanf:"port"`
}

// Address returns host:port for net.Listen.
func (s ServeConfig) Address() string {
	return net.JoinHostPort(s.Addr, strconv.Itoa(s.Port))
}

// OutputDialect returns the dialect output is rendered in.
func (c *Config) OutputDialect() string {
	if c.TargetDialect != "" {
		return c.TargetDialect
	}
	return c.Dialect
}

// String summarizes the effective settings for verbose logging.
func (c *Config) String() string {
	verify := "off"
	if c.Verify != nil {
		verify = c.Verify.Type
	}
	return fmt.Sprintf("dialect=%s target=%s output=%s jobs=%d verify=%s",
		c.Dialect, c.OutputDialect(), c.OutputFormat, c.Jobs, verify)
}

// Default configuration values.
const (
	DefaultDialect   = "generic"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultServeAddr = "127.0.0.1"
	DefaultServePort = 8080
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"sqlfront.yaml", "sqlfront.yml"}
