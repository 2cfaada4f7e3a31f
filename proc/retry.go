package proc

import (
	"regexp"
	"time"
)

const (
	defaultAttempts = 3
	defaultDelay    = 1 * time.Second
)

// RetryingRunner wraps a Commander for tools that hold a lock and report
// "another instance is running". When the captured output matches Busy it
// sleeps a fixed interval and retries, up to Attempts total attempts.
// Exhausting the attempts yields (nil, nil): callers must treat "no
// lines, no error" as temporarily unavailable, not as no findings.
type RetryingRunner struct {
	Commander

	Busy     *regexp.Regexp
	Attempts int
	Delay    time.Duration
}

func (r *RetryingRunner) Run(prog string, args ...string) ([]string, error) {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	delay := r.Delay
	if delay <= 0 {
		delay = defaultDelay
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
		}

		lines, err := r.Commander.Run(prog, args...)
		if err != nil {
			return nil, err
		}

		if !r.isBusy(lines) {
			return lines, nil
		}
	}

	return nil, nil
}

func (r *RetryingRunner) isBusy(lines []string) bool {
	if r.Busy == nil {
		return false
	}

	for _, line := range lines {
		if r.Busy.MatchString(line) {
			return true
		}
	}

	return false
}
