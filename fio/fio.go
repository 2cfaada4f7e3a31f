// Package fio checks Fusion-io PCIe flash devices through fio-status.
package fio

import (
	"fmt"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/proc"
)

var toolCandidates = []string{"/usr/bin/fio-status", "/usr/sbin/fio-status", "fio-status"}

type Driver struct {
	run   proc.Commander
	tool  string
	found bool
}

func New(run proc.Commander) *Driver {
	tool, found := proc.FirstExecutable(toolCandidates...)
	return &Driver{run: run, tool: tool, found: found}
}

func (d *Driver) Check(adapter int, host string) []raidcheck.Finding {
	if !d.found {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.FusionIO, adapter,
			"fio-status not found")}
	}

	lines, err := d.run.Run(d.tool)
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.FusionIO, adapter,
			fmt.Sprintf("cannot run %s: %s", d.tool, err))}
	}

	return parseStatus(adapter, lines)
}
