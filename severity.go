package raidcheck

import "encoding/json"

// Severity of a single finding. Ordered so that aggregation can take the
// integer maximum and the value doubles as the process exit code.
type Severity int

const (
	// OK - the unit is healthy.
	OK Severity = iota

	// Warning - degraded redundancy or a condition worth operator attention.
	Warning

	// Critical - the unit is failed, missing or in an unrecognized state.
	Critical
)

func (s Severity) String() string {
	return []string{"OK", "WARNING", "CRITICAL"}[s]
}

// MarshalJSON for string output rather than int
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Max returns the higher of s and other.
func (s Severity) Max(other Severity) Severity {
	if other > s {
		return other
	}

	return s
}
