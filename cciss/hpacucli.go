package cciss

import (
	"regexp"
	"strings"

	"machinerun.io/raidcheck"
)

// hpacucli show output lists units with their status as the last comma
// separated field inside the parentheses:
//
//	logicaldrive 1 (136.7 GB, RAID 1, OK)
//	physicaldrive 1I:1:1 (port 1I:box 1:bay 1, SAS, 146 GB, OK)
var unitLineRe = regexp.MustCompile(`^(logicaldrive|physicaldrive) (\S+) \((.*)\)$`)

var ccissVocab = map[string]raidcheck.Severity{
	"OK":                 raidcheck.OK,
	"Rebuilding":         raidcheck.Warning,
	"Recovering":         raidcheck.Warning,
	"Predictive Failure": raidcheck.Warning,
}

func parseShow(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}

	for _, line := range lines {
		m := unitLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		kind := raidcheck.LogicalDrive
		if m[1] == "physicaldrive" {
			kind = raidcheck.PhysicalDrive
		}

		fields := strings.Split(m[3], ", ")
		status := strings.TrimSpace(fields[len(fields)-1])

		sev, ok := ccissVocab[status]
		if !ok {
			sev = raidcheck.Critical
		}

		findings = append(findings, raidcheck.NewFinding(sev, kind,
			raidcheck.CCISS, adapter, m[2], status))
	}

	return findings
}
