package proc

import (
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// FirstExecutable returns the first candidate that exists and is
// executable. Absolute candidates are probed directly; bare names are
// resolved through PATH. The result is never re-probed by callers.
func FirstExecutable(candidates ...string) (string, bool) {
	for _, cand := range candidates {
		if !strings.ContainsRune(cand, os.PathSeparator) {
			if p, err := exec.LookPath(cand); err == nil {
				return p, true
			}

			continue
		}

		if isExecutable(cand) {
			return cand, true
		}
	}

	return "", false
}

func isExecutable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	return unix.Access(p, unix.X_OK) == nil
}
