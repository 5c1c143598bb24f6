// Package output renders command results for terminals, pipes and
// machine consumers.
package output

import "strings"

// OutputMode selects how results are written.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"     // text on a TTY, markdown otherwise
	ModeText     OutputMode = "text"     // styled text
	ModeMarkdown OutputMode = "markdown" // plain markdown
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Modes lists every accepted mode name.
var Modes = []OutputMode{ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML}

// Mode parses a mode name. Empty and unknown names mean ModeAuto.
func Mode(name string) OutputMode {
	m := OutputMode(strings.ToLower(strings.TrimSpace(name)))
	if m.Valid() {
		return m
	}
	return ModeAuto
}

// Valid reports whether m is one of Modes.
func (m OutputMode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// Structured reports whether m is a machine-readable mode.
func (m OutputMode) Structured() bool {
	return m == ModeJSON || m == ModeYAML
}
