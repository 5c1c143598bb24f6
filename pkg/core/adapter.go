package core

// AdapterConfig holds configuration for connecting a verifier to a database.
type AdapterConfig struct {
	Type    string
	Path    string // file path for embedded engines (duckdb, sqlite)
	DSN     string // connection string for server engines (postgres)
	Options map[string]string
}

// VerifyStatus is the outcome of checking one statement against a database.
type VerifyStatus int

// VerifyStatus constants.
const (
	VerifyOK VerifyStatus = iota
	VerifySkipped
	VerifyFailed
)

// String returns the lower-case name of the status.
func (s VerifyStatus) String() string {
	switch s {
	case VerifyOK:
		return "ok"
	case VerifySkipped:
		return "skipped"
	case VerifyFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// VerifyResult reports whether a database accepted a statement.
type VerifyResult struct {
	SQL    string
	Status VerifyStatus
	Reason string // database error or skip reason
}
