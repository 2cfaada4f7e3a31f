// Package smart wraps smartctl health probes behind a process-lifetime
// cache so that each disk is probed at most once per run.
package smart

// Health verdicts produced without (or instead of) a tool run. Anything
// else in Info.Health is the raw verdict string from smartctl, with the
// SCSI dialect's "OK" normalized to "PASSED".
const (
	HealthPassed     = "PASSED"
	HealthNoSmartctl = "no-smartctl!"
	HealthPreSmart   = "pre-smart"
	HealthOpenFailed = "smartctl-open-failed"

	// HealthLaunchFailed prefixes the verdict when a resolved smartctl
	// could not be started; the OS error text follows. Distinct from
	// HealthNoSmartctl, which means the host has no tool at all.
	HealthLaunchFailed = "smartctl-launch-failed"
)

// Info is the health summary for one disk. Written once when the device
// is first probed, never mutated afterwards.
type Info struct {
	Model  string
	Health string
	Size   string
}

// Lookup resolves a device name (kernel name or full path) to its health
// summary.
type Lookup interface {
	Health(device string) Info
}
