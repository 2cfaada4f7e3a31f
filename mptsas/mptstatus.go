package mptsas

import (
	"regexp"
	"strings"

	"machinerun.io/raidcheck"
)

// mpt-status prints one line per unit:
//
//	ioc0 vol_id 0 type IM, 2 phy, 67 GB, state OPTIMAL, flags ENABLED
//	ioc0 phy 0 scsi_id 1 ATA      ST3808110AS, 74 GB, state ONLINE, flags NONE
var (
	volLineRe = regexp.MustCompile(`vol_id (\d+) .*state (\w+), flags ([\w ]+)`)
	phyLineRe = regexp.MustCompile(`phy (\d+) scsi_id .*state (\w+), flags ([\w ]+)`)
)

var mptVocab = map[string]raidcheck.Severity{
	"OPTIMAL": raidcheck.OK,
	"ONLINE":  raidcheck.OK,
}

func parseMptStatus(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}

	for _, line := range lines {
		if m := volLineRe.FindStringSubmatch(line); m != nil {
			findings = append(findings, mptFinding(adapter,
				raidcheck.LogicalDrive, m[1], m[2], m[3]))

			continue
		}

		if m := phyLineRe.FindStringSubmatch(line); m != nil {
			findings = append(findings, mptFinding(adapter,
				raidcheck.PhysicalDrive, m[1], m[2], m[3]))
		}
	}

	if len(findings) == 0 && len(lines) > 0 {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Warning, raidcheck.MptSAS, adapter,
			"unrecognized mpt-status output (is the mptctl module loaded?)")}
	}

	return findings
}

func mptFinding(adapter int, kind raidcheck.UnitKind,
	unit, state, flags string) raidcheck.Finding {
	sev, ok := mptVocab[state]
	if !ok {
		sev = raidcheck.Critical
	}

	phrase := state

	// a resync in progress downgrades a healthy unit, nothing more
	if strings.Contains(flags, "RESYNC") {
		if sev == raidcheck.OK {
			sev = raidcheck.Warning
		}

		phrase += " (resyncing)"
	}

	return raidcheck.NewFinding(sev, kind, raidcheck.MptSAS, adapter,
		unit, phrase)
}
