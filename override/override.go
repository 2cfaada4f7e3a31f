// Package override reads the operator sentinel files that acknowledge
// known-empty controllers.
package override

import (
	"fmt"
	"os"
	"path/filepath"

	"machinerun.io/raidcheck"
)

// DefaultDir is where sentinel files live unless configured otherwise.
const DefaultDir = "/var/lib/raidcheck"

// Dir implements raidcheck.Overrides over a directory of sentinel files,
// one file per (family, adapter, concern).
type Dir struct {
	Path string
}

func New(path string) Dir {
	if path == "" {
		path = DefaultDir
	}

	return Dir{Path: path}
}

func (d Dir) SentinelPath(family raidcheck.DriverType, adapter int, concern string) string {
	return filepath.Join(d.Path, fmt.Sprintf("%s.%d.%s", family, adapter, concern))
}

// Acknowledged is true iff the sentinel file exists and is readable.
func (d Dir) Acknowledged(family raidcheck.DriverType, adapter int, concern string) bool {
	f, err := os.Open(d.SentinelPath(family, adapter, concern))
	if err != nil {
		return false
	}

	f.Close()

	return true
}
