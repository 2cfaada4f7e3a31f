// Package proc runs the external management tools and captures their
// standard output as lines.
package proc

import (
	"bytes"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// exit status reported when the real one cannot be determined.
const unknownRC = 127

// Commander executes an external command and captures stdout as an
// ordered sequence of lines with trailing newlines stripped. Run reports
// failure-to-launch as an error; a non-zero exit status is not an error
// there. Callers that care about the exit status use RunStatus.
type Commander interface {
	Run(prog string, args ...string) ([]string, error)
	RunStatus(prog string, args ...string) ([]string, int, error)
}

// ExecRunner is the os/exec backed Commander. With Trace set it logs
// wall-clock start and elapsed time per invocation; tracing only adds an
// out-of-band observation and never changes returned data.
type ExecRunner struct {
	Log   zerolog.Logger
	Trace bool
}

func (r *ExecRunner) Run(prog string, args ...string) ([]string, error) {
	lines, _, err := r.RunStatus(prog, args...)
	return lines, err
}

func (r *ExecRunner) RunStatus(prog string, args ...string) ([]string, int, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(prog, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	if r.Trace {
		r.Log.Debug().
			Str("cmd", prog).
			Strs("args", args).
			Time("start", start).
			Dur("elapsed", time.Since(start)).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("ran command")
	}

	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			// never started: no binary, no permission, ...
			return nil, unknownRC, errors.Wrapf(err, "failed to run %s", prog)
		}
	}

	return outputLines(stdout.Bytes()), exitStatus(err), nil
}

func outputLines(out []byte) []string {
	s := strings.TrimSuffix(string(out), "\n")
	if s == "" {
		return []string{}
	}

	return strings.Split(s, "\n")
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}

	exitError, ok := err.(*exec.ExitError)
	if ok {
		if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
			return status.ExitStatus()
		}
	}

	return unknownRC
}
