package tw

import (
	"regexp"
	"strings"

	"machinerun.io/raidcheck"
)

// 'tw_cli info cN' prints a unit table and a drive table:
//
//	u0    RAID-1    OK             -       -       -       698.481   ON
//	p0    OK             u0   698.63 GB SATA  0   -            ST3750640NS
var (
	unitRowRe = regexp.MustCompile(`^(u\d+)\s+(\S+)\s+(\S+)`)
	portRowRe = regexp.MustCompile(`^(p\d+)\s+(\S+)\s+(\S+)`)
)

// VERIFYING is a routine scrub, not a degradation.
var unitVocab = map[string]raidcheck.Severity{
	"OK":           raidcheck.OK,
	"VERIFYING":    raidcheck.OK,
	"REBUILDING":   raidcheck.Warning,
	"INITIALIZING": raidcheck.Warning,
	"MIGRATING":    raidcheck.Warning,
	"RECOVERY":     raidcheck.Warning,
}

var portVocab = map[string]raidcheck.Severity{
	"OK":         raidcheck.OK,
	"REBUILDING": raidcheck.Warning,
}

func parseInfo(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}

	for _, line := range lines {
		line = strings.TrimRight(line, " ")

		if m := unitRowRe.FindStringSubmatch(line); m != nil {
			unit, raidType, status := m[1], m[2], m[3]

			sev, ok := unitVocab[status]
			if !ok {
				sev = raidcheck.Critical
			}

			findings = append(findings, raidcheck.NewFinding(sev,
				raidcheck.LogicalDrive, raidcheck.ThreeWare, adapter,
				unit, raidType+" "+status))

			continue
		}

		if m := portRowRe.FindStringSubmatch(line); m != nil {
			port, status := m[1], m[2]

			sev, ok := portVocab[status]
			if !ok {
				sev = raidcheck.Critical
			}

			findings = append(findings, raidcheck.NewFinding(sev,
				raidcheck.PhysicalDrive, raidcheck.ThreeWare, adapter,
				port, status))
		}
	}

	return findings
}
