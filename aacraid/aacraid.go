// Package aacraid checks Adaptec/Microsemi aacraid controllers through
// arcconf, including the controller battery sub-check.
package aacraid

import (
	"fmt"
	"strconv"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/proc"
)

var toolCandidates = []string{
	"/usr/sbin/arcconf",
	"/usr/StorMan/arcconf",
	"arcconf",
}

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
			raidcheck.Critical, raidcheck.AacRAID, adapter,
			"arcconf not found")}
	}

	// arcconf numbers controllers from 1
	lines, err := d.run.Run(d.tool, "GETCONFIG", strconv.Itoa(adapter+1), "AL")
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.AacRAID, adapter,
			fmt.Sprintf("cannot run %s: %s", d.tool, err))}
	}

	return parseGetConfig(adapter, lines)
}
