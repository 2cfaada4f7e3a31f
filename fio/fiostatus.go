package fio

import (
	"regexp"
	"strings"

	"machinerun.io/raidcheck"
)

// fio-status lists each device with its attach state and, further down
// the block, a media status line:
//
//	fct0	Attached
//		...
//		Media status: Healthy; Reserves: 100.00%, warn at 10.00%
var fctLineRe = regexp.MustCompile(`^(fct\d+)\s+(\S+)`)

var mediaVocab = map[string]raidcheck.Severity{
	"Healthy":         raidcheck.OK,
	"Nearing wearout": raidcheck.Warning,
}

func parseStatus(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}

	var unit, attach, media string

	open := false

	flush := func() {
		if !open {
			return
		}

		sev := raidcheck.OK
		if attach != "Attached" {
			sev = raidcheck.Critical
		}

		phrase := attach

		if media != "" {
			mediaSev, ok := mediaVocab[media]
			if !ok {
				mediaSev = raidcheck.Critical
			}

			sev = sev.Max(mediaSev)
			phrase += ", media " + media
		}

		findings = append(findings, raidcheck.NewFinding(sev,
			raidcheck.LogicalDrive, raidcheck.FusionIO, adapter,
			unit, phrase))

		open, unit, attach, media = false, "", "", ""
	}

	for _, line := range lines {
		if m := fctLineRe.FindStringSubmatch(line); m != nil {
			flush()

			open, unit, attach = true, m[1], m[2]

			continue
		}

		if !open {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Media status:") {
			media = mediaState(trimmed)
		}
	}

	flush()

	return findings
}

// mediaState - "Media status: Healthy; Reserves: 100.00%, ..." -> "Healthy"
func mediaState(line string) string {
	val := strings.TrimSpace(strings.TrimPrefix(line, "Media status:"))
	if i := strings.IndexAny(val, ";,"); i >= 0 {
		val = val[:i]
	}

	return strings.TrimSpace(val)
}
