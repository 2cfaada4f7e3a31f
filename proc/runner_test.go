package proc

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestOutputLines(t *testing.T) {
	for _, d := range []struct {
		in       string
		expected []string
	}{
		{"", []string{}},
		{"one\n", []string{"one"}},
		{"one\ntwo\n", []string{"one", "two"}},
		{"no trailing newline", []string{"no trailing newline"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
	} {
		assert.Equal(t, d.expected, outputLines([]byte(d.in)))
	}
}

func TestRunLaunchFailure(t *testing.T) {
	r := &ExecRunner{}

	lines, err := r.Run("/surely/does/not/exist/raidcheck-tool")
	if err == nil {
		t.Fatal("expected a launch failure error")
	}

	assert.Nil(t, lines)
	assert.Contains(t, err.Error(), "raidcheck-tool")
}

func TestTraceIncludesStderr(t *testing.T) {
	var buf bytes.Buffer
	r := &ExecRunner{Log: zerolog.New(&buf), Trace: true}

	lines, rc, err := r.RunStatus("sh", "-c", "echo out; echo oops >&2; exit 7")

	assert.NoError(t, err)
	assert.Equal(t, []string{"out"}, lines)
	assert.Equal(t, 7, rc)
	assert.Contains(t, buf.String(), "oops")
}

func TestExitStatusNil(t *testing.T) {
	assert.Equal(t, 0, exitStatus(nil))
}
