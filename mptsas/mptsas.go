// Package mptsas checks LSI mptsas fusion controllers. It prefers the
// classic mpt-status tool and falls back to sas2ircu when mpt-status is
// not installed.
package mptsas

import (
	"fmt"
	"strconv"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/proc"
)

var (
	mptStatusCandidates = []string{"/usr/sbin/mpt-status", "mpt-status"}
	sas2ircuCandidates  = []string{"/usr/sbin/sas2ircu", "sas2ircu"}
)

type Driver struct {
	run proc.Commander

	mptTool  string
	mptFound bool
	sasTool  string
	sasFound bool
}

func New(run proc.Commander) *Driver {
	d := &Driver{run: run}
	d.mptTool, d.mptFound = proc.FirstExecutable(mptStatusCandidates...)
	d.sasTool, d.sasFound = proc.FirstExecutable(sas2ircuCandidates...)

	return d
}

func (d *Driver) Check(adapter int, host string) []raidcheck.Finding {
	if d.mptFound {
		return d.checkMptStatus(adapter)
	}

	if d.sasFound {
		return d.checkSas2ircu(adapter)
	}

	return []raidcheck.Finding{raidcheck.Note(
		raidcheck.Critical, raidcheck.MptSAS, adapter,
		"neither mpt-status nor sas2ircu found")}
}

func (d *Driver) checkMptStatus(adapter int) []raidcheck.Finding {
	lines, err := d.run.Run(d.mptTool, "-u", strconv.Itoa(adapter))
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.MptSAS, adapter,
			fmt.Sprintf("cannot run %s: %s", d.mptTool, err))}
	}

	return parseMptStatus(adapter, lines)
}

func (d *Driver) checkSas2ircu(adapter int) []raidcheck.Finding {
	lines, err := d.run.Run(d.sasTool, strconv.Itoa(adapter), "DISPLAY")
	if err != nil {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Critical, raidcheck.MptSAS, adapter,
			fmt.Sprintf("cannot run %s: %s", d.sasTool, err))}
	}

	return parseSas2ircu(adapter, lines)
}
