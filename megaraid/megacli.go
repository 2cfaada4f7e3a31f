package megaraid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"machinerun.io/raidcheck"
)

var (
	virtDriveRe = regexp.MustCompile(`^Virtual Drive:\s*(\d+)`)
	enclosureRe = regexp.MustCompile(`^Enclosure Device ID:\s*(\S+)`)
)

// ldVocab - recognized logical drive states. Anything else is critical.
var ldVocab = map[string]raidcheck.Severity{
	"Optimal": raidcheck.OK,
}

// pdVocab - recognized physical drive firmware states (first comma
// separated segment). Anything else is critical.
var pdVocab = map[string]raidcheck.Severity{
	"Online":             raidcheck.OK,
	"Unconfigured(good)": raidcheck.OK,
	"Hotspare":           raidcheck.OK,
	"JBOD":               raidcheck.OK,
	"Rebuild":            raidcheck.Warning,
	"Copyback":           raidcheck.Warning,
}

// parseLDInfo scans 'MegaCli -LDInfo -Lall -aN' output. Each
// "Virtual Drive:" marker opens a record; "State:" fills it in; the next
// marker (or end of input) materializes it into one finding.
func parseLDInfo(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}

	open := false

	var unit, state string

	flush := func() {
		if !open {
			return
		}

		if state == "" {
			findings = append(findings, raidcheck.NewFinding(
				raidcheck.Warning, raidcheck.LogicalDrive,
				raidcheck.MegaRAID, adapter, unit, "no State field found"))
		} else {
			sev, ok := ldVocab[state]
			if !ok {
				sev = raidcheck.Critical
			}

			findings = append(findings, raidcheck.NewFinding(sev,
				raidcheck.LogicalDrive, raidcheck.MegaRAID, adapter,
				unit, state))
		}

		open, unit, state = false, "", ""
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if m := virtDriveRe.FindStringSubmatch(line); m != nil {
			flush()

			open, unit = true, m[1]

			continue
		}

		if !open {
			continue
		}

		if v, ok := fieldValue(line, "State"); ok {
			state = v
		}
	}

	flush()

	return findings
}

// parsePDList scans 'MegaCli -PDList -aN' output. Records start at
// "Enclosure Device ID:"; blank lines occur inside a record and do not
// terminate it. Media, other and predictive failure counts are summed
// into one errors counter that only ever downgrades OK to WARNING.
func parsePDList(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}

	open := false

	var encl, slot, state string

	var errCount int

	flush := func() {
		if !open {
			return
		}

		unit := encl + ":" + slot
		sev, ok := pdVocab[firstSegment(state)]

		if !ok {
			sev = raidcheck.Critical
		}

		phrase := state
		if state == "" {
			sev, phrase = raidcheck.Warning, "no Firmware state found"
		}

		if errCount > 0 && sev == raidcheck.OK {
			sev = raidcheck.Warning
			phrase = fmt.Sprintf("%s (errors: %d)", phrase, errCount)
		}

		findings = append(findings, raidcheck.NewFinding(sev,
			raidcheck.PhysicalDrive, raidcheck.MegaRAID, adapter,
			unit, phrase))

		open, encl, slot, state, errCount = false, "", "", "", 0
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if m := enclosureRe.FindStringSubmatch(line); m != nil {
			flush()

			open, encl = true, m[1]

			continue
		}

		if !open {
			continue
		}

		if v, ok := fieldValue(line, "Slot Number"); ok {
			slot = v
		} else if v, ok := fieldValue(line, "Firmware state"); ok {
			state = v
		} else if v, ok := fieldValue(line, "Media Error Count"); ok {
			errCount += atoiOrZero(v)
		} else if v, ok := fieldValue(line, "Other Error Count"); ok {
			errCount += atoiOrZero(v)
		} else if v, ok := fieldValue(line, "Predictive Failure Count"); ok {
			errCount += atoiOrZero(v)
		}
	}

	flush()

	return findings
}

// fieldValue matches "Key: value" and "Key : value" lines.
func fieldValue(line, key string) (string, bool) {
	if !strings.HasPrefix(line, key) {
		return "", false
	}

	rest := strings.TrimLeft(line[len(key):], " ")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}

	return strings.TrimSpace(rest[1:]), true
}

// firstSegment - "Online, Spun Up" -> "Online"
func firstSegment(state string) string {
	return strings.TrimSpace(strings.SplitN(state, ",", 2)[0])
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}
