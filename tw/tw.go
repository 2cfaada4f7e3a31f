// Package tw checks 3ware/AMCC controllers through tw_cli.
package tw

import (
	"fmt"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/proc"
)

var toolCandidates = []string{"/usr/sbin/tw_cli", "/usr/sbin/tw-cli", "tw_cli"}

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
			raidcheck.Critical, raidcheck.ThreeWare, adapter,
			"tw_cli not found")}
	}

	lines, err := d.run.Run(d.tool, "info", fmt.Sprintf("c%d", adapter))
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.ThreeWare, adapter,
			fmt.Sprintf("cannot run %s: %s", d.tool, err))}
	}

	return parseInfo(adapter, lines)
}
