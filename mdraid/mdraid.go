// Package mdraid checks linux software RAID arrays by parsing
// /proc/mdstat and probing member disk health through smartctl.
package mdraid

import (
	"fmt"
	"os"
	"strings"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/smart"
)

// MdstatPath is where the kernel exposes md array status.
const MdstatPath = "/proc/mdstat"

// Driver parses the md block for every array. It is registered once;
// adapter is always 0 since the md subsystem is a single instance.
type Driver struct {
	Path  string
	Smart smart.Lookup
}

func New(sm smart.Lookup) *Driver {
	return &Driver{Path: MdstatPath, Smart: sm}
}

func (d *Driver) Check(adapter int, host string) []raidcheck.Finding {
	content, err := os.ReadFile(d.Path)
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.MDRaid, adapter,
			fmt.Sprintf("cannot read %s: %s", d.Path, err))}
	}

	return d.parse(adapter, strings.Split(string(content), "\n"))
}
