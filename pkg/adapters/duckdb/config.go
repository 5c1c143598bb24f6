package duckdb

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Options using mapstructure.
type Params struct {
	// Extensions to load after connecting (e.g., "json", "parquet").
	// Written as a comma-separated list.
	Extensions []string `mapstructure:"extensions"`

	// Threads caps the worker threads DuckDB may use; 0 keeps the default.
	Threads int `mapstructure:"threads"`

	// MemoryLimit such as "1GB"; empty keeps the default.
	MemoryLimit string `mapstructure:"memory_limit"`
}

// parseParams decodes adapter options into Params. Unknown keys are an
// error so misspelled options do not pass silently.
func parseParams(options map[string]string) (*Params, error) {
	params := &Params{}
	if len(options) == 0 {
		return params, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           params,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(options); err != nil {
		return nil, fmt.Errorf("invalid duckdb options: %w", err)
	}
	return params, nil
}

// statements returns the session statements that apply p.
func (p *Params) statements() []string {
	var stmts []string
	for _, ext := range p.Extensions {
		stmts = append(stmts, fmt.Sprintf("LOAD %s", ext))
	}
	if p.Threads > 0 {
		stmts = append(stmts, fmt.Sprintf("SET threads = %d", p.Threads))
	}
	if p.MemoryLimit != "" {
		stmts = append(stmts, fmt.Sprintf("SET memory_limit = '%s'", p.MemoryLimit))
	}
	return stmts
}
