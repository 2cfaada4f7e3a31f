package aacraid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"machinerun.io/raidcheck"
)

type section int

const (
	secNone section = iota
	secController
	secBattery
	secLogical
	secPhysical
)

var sectionTitles = map[string]section{
	"Controller information":         secController,
	"Controller Battery Information": secBattery,
	"Logical device information":     secLogical,
	"Logical drive information":      secLogical,
	"Physical Device information":    secPhysical,
}

var (
	logicalDevRe = regexp.MustCompile(`^Logical (?:device|drive) number (\d+)`)
	physDevRe    = regexp.MustCompile(`^Device #(\d+)`)
)

var ldVocab = map[string]raidcheck.Severity{
	"Optimal":       raidcheck.OK,
	"Impacted":      raidcheck.Warning,
	"Rebuilding":    raidcheck.Warning,
	"Reconfiguring": raidcheck.Warning,
}

var pdVocab = map[string]raidcheck.Severity{
	"Online":              raidcheck.OK,
	"Ready":               raidcheck.OK,
	"Hot Spare":           raidcheck.OK,
	"Global Hot-Spare":    raidcheck.OK,
	"Dedicated Hot-Spare": raidcheck.OK,
	"Rebuilding":          raidcheck.Warning,
}

// controller-level accumulator, folded into a single finding: the base
// controller status, battery charge thresholds and the over-temperature
// flag.
type ctrlInfo struct {
	status      string
	batStatus   string
	batCapacity int
	overTemp    bool
}

// parseGetConfig scans 'arcconf GETCONFIG N AL' output. The battery block
// reuses the "Status" label, so field meaning depends on the section the
// scanner is currently in.
func parseGetConfig(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}
	sec := secNone
	ctrl := ctrlInfo{batCapacity: -1}

	var unit, state string

	var isDisk, open bool

	flush := func() {
		if !open {
			return
		}

		switch {
		case sec == secLogical || (sec == secPhysical && isDisk):
			kind, vocab := raidcheck.LogicalDrive, ldVocab
			if sec == secPhysical {
				kind, vocab = raidcheck.PhysicalDrive, pdVocab
			}

			sev, ok := vocab[state]
			if !ok {
				sev = raidcheck.Critical
			}

			phrase := state
			if state == "" {
				sev, phrase = raidcheck.Warning, "no status found"
			}

			findings = append(findings, raidcheck.NewFinding(sev, kind,
				raidcheck.AacRAID, adapter, unit, phrase))
		}

		open, isDisk, unit, state = false, false, "", ""
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if s, ok := sectionTitles[trimmed]; ok {
			flush()

			sec = s

			continue
		}

		if m := logicalDevRe.FindStringSubmatch(trimmed); m != nil {
			flush()

			sec, open, unit = secLogical, true, m[1]

			continue
		}

		if m := physDevRe.FindStringSubmatch(trimmed); m != nil && sec == secPhysical {
			flush()

			open, unit = true, m[1]

			continue
		}

		if strings.HasPrefix(trimmed, "Device is a Hard drive") {
			isDisk = true
			continue
		}

		key, val, ok := splitField(trimmed)
		if !ok {
			continue
		}

		switch sec {
		case secController:
			if key == "Controller Status" {
				ctrl.status = val
			}
		case secBattery:
			switch key {
			case "Status":
				ctrl.batStatus = val
			case "Capacity remaining":
				ctrl.batCapacity = atoiPrefix(val)
			case "Over temperature":
				ctrl.overTemp = val == "Yes"
			}
		case secLogical:
			if key == "Status of logical device" || key == "Status of logical drive" {
				state = val
			}
		case secPhysical:
			if key == "State" {
				state = val
			}
		}
	}

	flush()

	if ctrl.status != "" {
		findings = append([]raidcheck.Finding{controllerFinding(adapter, ctrl)},
			findings...)
	}

	return findings
}

func controllerFinding(adapter int, ctrl ctrlInfo) raidcheck.Finding {
	sev := raidcheck.Critical
	if ctrl.status == "Optimal" || ctrl.status == "Okay" {
		sev = raidcheck.OK
	}

	phrase := ctrl.status

	// a charging battery is only a problem when the charge is low
	if ctrl.batStatus == "Charging" && ctrl.batCapacity >= 0 {
		switch {
		case ctrl.batCapacity < 25:
			sev = sev.Max(raidcheck.Critical)
		case ctrl.batCapacity < 50:
			sev = sev.Max(raidcheck.Warning)
		}

		phrase = fmt.Sprintf("%s, battery charging %d%%", phrase, ctrl.batCapacity)
	}

	if ctrl.overTemp && sev == raidcheck.OK {
		sev = raidcheck.Warning
		phrase += ", battery over temperature"
	}

	return raidcheck.NewFinding(sev, raidcheck.ControllerUnit,
		raidcheck.AacRAID, adapter, "status", phrase)
}

func splitField(line string) (string, string, bool) {
	toks := strings.SplitN(line, ":", 2)
	if len(toks) != 2 {
		return "", "", false
	}

	return strings.TrimSpace(toks[0]), strings.TrimSpace(toks[1]), true
}

// atoiPrefix - "23 percent" -> 23
func atoiPrefix(val string) int {
	fields := strings.Fields(val)
	if len(fields) == 0 {
		return -1
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return -1
	}

	return n
}
