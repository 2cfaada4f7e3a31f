package raidcheck

import (
	"fmt"
	"sort"
	"strings"
)

// AllClearLine is printed when discovery finds neither software RAID
// arrays nor any controller. Absence of RAID is not itself a fault.
const AllClearLine = "OK: no RAID controllers or md arrays found"

// Report renders the one-line aggregated report and selects the exit
// code. Severity groups are rendered in fixed CRITICAL, WARNING, OK order
// with messages sorted lexicographically, so the output is byte-identical
// regardless of the order findings were produced in.
func Report(findings []Finding) (string, int) {
	if len(findings) == 0 {
		return AllClearLine, 0
	}

	groups := map[Severity][]string{}
	worst := OK

	for _, f := range findings {
		groups[f.Severity] = append(groups[f.Severity], f.Message)
		worst = worst.Max(f.Severity)
	}

	parts := []string{}

	for _, sev := range []Severity{Critical, Warning, OK} {
		msgs := groups[sev]
		if len(msgs) == 0 {
			continue
		}

		sort.Strings(msgs)
		parts = append(parts,
			fmt.Sprintf("%s: [%s]", sev, strings.Join(msgs, "] [")))
	}

	return strings.Join(parts, ", "), int(worst)
}
