package raidcheck

// DriverType names a controller family handled by this tool.
type DriverType string

const (
	// MDRaid - linux software RAID (md) arrays.
	MDRaid DriverType = "md"

	// MegaRAID - LSI/Broadcom MegaRAID and Dell PERC controllers.
	MegaRAID DriverType = "megaraid"

	// MptSAS - LSI mptsas/mptspi fusion controllers.
	MptSAS DriverType = "mptsas"

	// AacRAID - Adaptec/Microsemi aacraid controllers.
	AacRAID DriverType = "aacraid"

	// CCISS - HP/Compaq Smart Array controllers.
	CCISS DriverType = "cciss"

	// ThreeWare - 3ware/AMCC controllers.
	ThreeWare DriverType = "3ware"

	// FusionIO - Fusion-io PCIe flash devices.
	FusionIO DriverType = "fusionio"
)

// DriverTypes lists all known families in the order they are reported.
var DriverTypes = []DriverType{
	MDRaid, MegaRAID, MptSAS, AacRAID, CCISS, ThreeWare, FusionIO,
}

// ControllerInstance is one discovered controller (or the md subsystem).
// Adapter is 0-based and contiguous within a family, assigned in ascending
// order of the raw host handle. Host is the driver specific raw identifier
// the instance was discovered through (e.g. "host2" for a SCSI host).
type ControllerInstance struct {
	Driver  DriverType
	Adapter int
	Host    string
}

// Driver checks one controller instance and reports findings. A driver
// never returns an error: tool and launch failures become CRITICAL
// findings, and an empty result is escalated by the dispatcher.
type Driver interface {
	Check(adapter int, host string) []Finding
}

// Registry maps a driver family to its parser. Dispatch is a pure lookup;
// families without an entry are skipped.
type Registry map[DriverType]Driver

// Override concerns consulted by the dispatcher when a check comes back
// empty or without any logical drive.
const (
	ConcernNoDisks         = "no-disks"
	ConcernNoLogicalDrives = "no-logical-drives"
)

// Overrides is the operator sentinel-file policy: a readable file at the
// per-family, per-adapter, per-concern path acknowledges an otherwise
// alarming empty state.
type Overrides interface {
	Acknowledged(family DriverType, adapter int, concern string) bool

	// SentinelPath returns the path an operator must create to
	// acknowledge the condition, used in WARNING messages.
	SentinelPath(family DriverType, adapter int, concern string) string
}
