package mptsas

import (
	"regexp"
	"strings"

	"machinerun.io/raidcheck"
)

// sas2ircu DISPLAY interleaves "IR volume N" and "Device is a Hard disk"
// blocks that reuse the same field labels (State, Size), so the
// accumulator tracks which unit kind the most recent marker opened.

var irVolumeRe = regexp.MustCompile(`^IR volume (\d+)`)

var sasVolVocab = map[string]raidcheck.Severity{
	"Okay":         raidcheck.OK,
	"Initializing": raidcheck.Warning,
}

var sasDiskVocab = map[string]raidcheck.Severity{
	"Optimal":    raidcheck.OK,
	"Ready":      raidcheck.OK,
	"Online":     raidcheck.OK,
	"Hot Spare":  raidcheck.OK,
	"Available":  raidcheck.OK,
	"Rebuilding": raidcheck.Warning,
}

func parseSas2ircu(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}

	var kind raidcheck.UnitKind

	var unit, state, encl, slot string

	open := false

	flush := func() {
		if !open {
			return
		}

		vocab := sasVolVocab
		if kind == raidcheck.PhysicalDrive {
			vocab = sasDiskVocab

			if encl != "" || slot != "" {
				unit = encl + ":" + slot
			}
		}

		sev, ok := vocab[state]
		if !ok {
			sev = raidcheck.Critical
		}

		phrase := state
		if state == "" {
			sev, phrase = raidcheck.Warning, "no state found"
		}

		findings = append(findings, raidcheck.NewFinding(sev, kind,
			raidcheck.MptSAS, adapter, unit, phrase))

		open, unit, state, encl, slot = false, "", "", "", ""
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if m := irVolumeRe.FindStringSubmatch(trimmed); m != nil {
			flush()

			open, kind, unit = true, raidcheck.LogicalDrive, m[1]

			continue
		}

		if strings.HasPrefix(trimmed, "Device is a Hard disk") {
			flush()

			open, kind = true, raidcheck.PhysicalDrive

			continue
		}

		if !open {
			continue
		}

		key, val, ok := splitField(trimmed)
		if !ok {
			continue
		}

		switch key {
		case "Status of volume", "State":
			state = stripStateCode(val)
		case "Enclosure #":
			encl = val
		case "Slot #":
			slot = val
		}
	}

	flush()

	if len(findings) == 0 && len(lines) > 0 {
		return []raidcheck.Finding{raidcheck.Note(
			raidcheck.Warning, raidcheck.MptSAS, adapter,
			"unrecognized sas2ircu output")}
	}

	return findings
}

func splitField(line string) (string, string, bool) {
	toks := strings.SplitN(line, ":", 2)
	if len(toks) != 2 {
		return "", "", false
	}

	return strings.TrimSpace(toks[0]), strings.TrimSpace(toks[1]), true
}

// stripStateCode - "Optimal (OPT)" -> "Optimal"
func stripStateCode(val string) string {
	if i := strings.Index(val, " ("); i >= 0 {
		return val[:i]
	}

	return val
}
