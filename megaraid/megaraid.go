// Package megaraid checks MegaRAID/PERC controllers through the MegaCli
// management tool.
package megaraid

import (
	"fmt"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/proc"
)

var toolCandidates = []string{
	"/usr/sbin/megacli",
	"/opt/MegaRAID/MegaCli/MegaCli64",
	"/opt/MegaRAID/MegaCli/MegaCli",
	"MegaCli64",
	"MegaCli",
	"megacli",
}

// Driver runs MegaCli -LDInfo and -PDList for one adapter and converts
// the output into findings.
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
			raidcheck.Critical, raidcheck.MegaRAID, adapter,
			"MegaCli not found")}
	}

	aArg := fmt.Sprintf("-a%d", adapter)

	ldLines, err := d.run.Run(d.tool, "-LDInfo", "-Lall", aArg, "-NoLog")
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.MegaRAID, adapter,
			fmt.Sprintf("cannot run %s: %s", d.tool, err))}
	}

	findings := parseLDInfo(adapter, ldLines)

	pdLines, err := d.run.Run(d.tool, "-PDList", aArg, "-NoLog")
	if err != nil {
		return append(findings, raidcheck.Note(
			raidcheck.Critical, raidcheck.MegaRAID, adapter,
			fmt.Sprintf("cannot run %s: %s", d.tool, err)))
	}

	return append(findings, parsePDList(adapter, pdLines)...)
}
