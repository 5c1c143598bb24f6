package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/adapter"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// Validate checks if the configuration is valid. Dialect and adapter
// names are checked against the registries, so the packages that
// register them must be imported by the caller.
func (c *Config) Validate() error {
	if err := validateDialect("dialect", c.Dialect); err != nil {
		return err
	}
	if c.TargetDialect != "" {
		if err := validateDialect("target_dialect", c.TargetDialect); err != nil {
			return err
		}
	}
	if c.OutputFormat != "" && !output.OutputMode(strings.ToLower(c.OutputFormat)).Valid() {
		return fmt.Errorf("invalid output %q (expected one of %v)", c.OutputFormat, output.Modes)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	if c.Verify != nil {
		if c.Verify.Type == "" {
			return fmt.Errorf("verify.type is required when verify is configured")
		}
		if !adapter.IsRegistered(c.Verify.Type) {
			return &adapter.UnknownAdapterError{Type: c.Verify.Type, Available: adapter.ListAdapters()}
		}
	}
	return nil
}

func validateDialect(key, name string) error {
	if _, ok := dialect.Get(name); !ok {
		return fmt.Errorf("unknown %s %q (available: %s)", key, name, strings.Join(dialect.List(), ", "))
	}
	return nil
}
