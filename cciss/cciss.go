// Package cciss checks HP/Compaq Smart Array controllers through
// hpacucli. The tool holds a lock, so invocations go through a retrying
// runner; when the retries are exhausted the check reports nothing and
// the dispatcher escalates.
package cciss

import (
	"fmt"
	"regexp"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/proc"
)

var toolCandidates = []string{
	"/usr/sbin/hpacucli",
	"/usr/sbin/hpssacli",
	"hpacucli",
	"hpssacli",
}

var busyRe = regexp.MustCompile(`Another instance of ACU is already running`)

type Driver struct {
	run   *proc.RetryingRunner
	tool  string
	found bool
}

func New(run proc.Commander) *Driver {
	tool, found := proc.FirstExecutable(toolCandidates...)

	return &Driver{
		run:   &proc.RetryingRunner{Commander: run, Busy: busyRe},
		tool:  tool,
		found: found,
	}
}

func (d *Driver) Check(adapter int, host string) []raidcheck.Finding {
	if !d.found {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.CCISS, adapter,
			"hpacucli not found")}
	}

	slot := fmt.Sprintf("slot=%d", adapter)

	ldLines, err := d.run.Run(d.tool, "controller", slot,
		"logicaldrive", "all", "show")
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.CCISS, adapter,
			fmt.Sprintf("cannot run %s: %s", d.tool, err))}
	}

	if ldLines == nil {
		// tool busy after retries; skip this check entirely
		return nil
	}

	findings := parseShow(adapter, ldLines)

	pdLines, err := d.run.Run(d.tool, "controller", slot,
		"physicaldrive", "all", "show")
	if err != nil {
		return append(findings, raidcheck.Note(
			raidcheck.Critical, raidcheck.CCISS, adapter,
			fmt.Sprintf("cannot run %s: %s", d.tool, err)))
	}

	return append(findings, parseShow(adapter, pdLines)...)
}
