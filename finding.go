package raidcheck

import "fmt"

// UnitKind distinguishes what a finding is about.
type UnitKind string

const (
	// LogicalDrive - an array-level unit presented by a controller.
	LogicalDrive UnitKind = "ld"

	// PhysicalDrive - a single physical disk.
	PhysicalDrive UnitKind = "phy"

	// ControllerUnit - the controller itself (status, battery, missing tool).
	ControllerUnit UnitKind = "ctl"
)

// Finding is one (severity, message) observation about one unit. It is a
// pure value: produced by a driver, consumed only by the reporter.
type Finding struct {
	Severity Severity
	Kind     UnitKind
	Message  string
}

// NewFinding builds a finding about a unit. The message identifies the
// family, adapter, unit kind and unit so that the one-line report remains
// readable when many controllers are present.
func NewFinding(sev Severity, kind UnitKind, family DriverType,
	adapter int, unit, status string) Finding {
	return Finding{
		Severity: sev,
		Kind:     kind,
		Message: fmt.Sprintf("%s:%d:%s:%s %s",
			family, adapter, kind, unit, status),
	}
}

// Note builds a controller-level finding with no unit, used for tool
// failures and dispatcher escalations.
func Note(sev Severity, family DriverType, adapter int, status string) Finding {
	return Finding{
		Severity: sev,
		Kind:     ControllerUnit,
		Message:  fmt.Sprintf("%s:%d %s", family, adapter, status),
	}
}
