package mdraid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/smart"
)

// parser states for one array block: a header line opens the block, the
// blocks/summary line fills in totals, an optional progress line marks a
// resync, and a blank line closes the block.
type parseState int

const (
	stIdle parseState = iota
	stHeader
	stSummary
)

// arraySlot is the transient per-member record built while scanning one
// array's description.
type arraySlot struct {
	partition string
	disk      string
	slot      int
	spare     bool
	faulty    bool
}

type mdArray struct {
	name      string
	state     string
	members   []arraySlot
	total     int
	present   int
	statusStr string
	resyncing bool
}

var (
	headerRe  = regexp.MustCompile(`^(md\d+)\s*:\s*(.*)$`)
	memberRe  = regexp.MustCompile(`^([A-Za-z0-9/_-]+)\[(\d+)\]((?:\([A-Z]\))*)$`)
	personaRe = regexp.MustCompile(`^(linear|multipath|faulty|raid\d+)$`)
	summaryRe = regexp.MustCompile(`^\s*(\d+) blocks .*\[(\d+)/(\d+)\]\s+\[([U_]+)\]`)
	resyncRe  = regexp.MustCompile(`(recovery|resync|reshape)\s*=\s*[0-9.]+%`)
)

func (d *Driver) parse(adapter int, lines []string) []raidcheck.Finding {
	findings := []raidcheck.Finding{}
	state := stIdle

	var cur mdArray

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if state != stIdle {
				findings = append(findings, d.closeArray(adapter, cur)...)
				state, cur = stIdle, mdArray{}
			}

			continue
		}

		if m := headerRe.FindStringSubmatch(line); m != nil {
			if state != stIdle {
				findings = append(findings, d.closeArray(adapter, cur)...)
			}

			cur = parseHeader(m[1], m[2])
			state = stHeader

			continue
		}

		if state == stIdle {
			continue
		}

		if m := summaryRe.FindStringSubmatch(line); m != nil && state == stHeader {
			cur.total, _ = strconv.Atoi(m[2])
			cur.present, _ = strconv.Atoi(m[3])
			cur.statusStr = m[4]
			state = stSummary

			continue
		}

		// a progress line annotates the block but does not change state
		if resyncRe.MatchString(line) {
			cur.resyncing = true
		}
	}

	if state != stIdle {
		findings = append(findings, d.closeArray(adapter, cur)...)
	}

	return findings
}

// parseHeader splits "active raid1 sdb1[1] sda1[0]" into the array state,
// the member slots and their spare/faulty tags. Write-mostly (W) tags are
// dropped.
func parseHeader(name, rest string) mdArray {
	arr := mdArray{name: name}
	stateWords := []string{}

	for _, tok := range strings.Fields(rest) {
		if m := memberRe.FindStringSubmatch(tok); m != nil {
			slot, _ := strconv.Atoi(m[2])
			arr.members = append(arr.members, arraySlot{
				partition: m[1],
				disk:      diskOfPartition(m[1]),
				slot:      slot,
				spare:     strings.Contains(m[3], "(S)"),
				faulty:    strings.Contains(m[3], "(F)"),
			})

			continue
		}

		if personaRe.MatchString(tok) || strings.HasPrefix(tok, "(") {
			// raid level and (auto-read-only) are not part of the state
			continue
		}

		if len(arr.members) == 0 {
			stateWords = append(stateWords, tok)
		}
	}

	arr.state = strings.Join(stateWords, " ")

	return arr
}

// closeArray turns a fully scanned block into findings: one per slot and
// one for the array itself. The array severity is the maximum of the
// degradation checks and every slot finding.
func (d *Driver) closeArray(adapter int, arr mdArray) []raidcheck.Finding {
	findings := []raidcheck.Finding{}
	worst := raidcheck.OK

	slots := make([]arraySlot, arr.total)
	placed := map[string]bool{}

	for _, m := range arr.members {
		if m.slot < arr.total && !m.spare {
			slots[m.slot] = m
			placed[m.partition] = true
		}
	}

	if arr.statusStr != "" && len(arr.statusStr) != arr.total {
		findings = append(findings, raidcheck.Note(
			raidcheck.Warning, raidcheck.MDRaid, adapter,
			fmt.Sprintf("%s status string [%s] does not cover %d slots",
				arr.name, arr.statusStr, arr.total)))
		worst = raidcheck.Warning
	}

	for i, sl := range slots {
		if sl.partition == "" {
			missing := raidcheck.NewFinding(raidcheck.Critical,
				raidcheck.PhysicalDrive, raidcheck.MDRaid, adapter,
				fmt.Sprintf("%s/slot%d", arr.name, i), "MISSING")
			findings = append(findings, missing)
			worst = worst.Max(raidcheck.Critical)

			continue
		}

		f := d.slotFinding(adapter, sl, "")
		findings = append(findings, f)
		worst = worst.Max(f.Severity)
	}

	// members outside the slot map: spares, and failed members the
	// kernel renumbered past the array size
	for _, m := range arr.members {
		if placed[m.partition] {
			continue
		}

		prefix := ""
		if m.spare {
			prefix = "spare "
		}

		f := d.slotFinding(adapter, m, prefix)
		findings = append(findings, f)
		worst = worst.Max(f.Severity)
	}

	sev := worst
	if arr.present < arr.total {
		sev = sev.Max(raidcheck.Critical)
	}

	if arr.state != "active" {
		sev = sev.Max(raidcheck.Critical)
	}

	if arr.resyncing {
		sev = sev.Max(raidcheck.Warning)
	}

	for _, m := range arr.members {
		if m.faulty {
			sev = sev.Max(raidcheck.Warning)
		}
	}

	phrase := fmt.Sprintf("%s [%d/%d]", arr.state, arr.total, arr.present)
	if arr.resyncing {
		phrase += " resyncing"
	}

	return append(findings, raidcheck.NewFinding(sev,
		raidcheck.LogicalDrive, raidcheck.MDRaid, adapter, arr.name, phrase))
}

func (d *Driver) slotFinding(adapter int, sl arraySlot, prefix string) raidcheck.Finding {
	info := d.Smart.Health(sl.disk)

	sev := raidcheck.Critical
	if healthAcceptable(info.Health) {
		sev = raidcheck.OK
	}

	phrase := prefix + info.Health
	if sl.faulty {
		phrase += " (faulty)"
	}

	return raidcheck.NewFinding(sev, raidcheck.PhysicalDrive,
		raidcheck.MDRaid, adapter, sl.partition, phrase)
}

// healthAcceptable - PASSED, or SMART genuinely unavailable for the disk.
func healthAcceptable(health string) bool {
	switch health {
	case smart.HealthPassed, smart.HealthNoSmartctl, smart.HealthPreSmart:
		return true
	}

	return false
}

// diskOfPartition maps a partition name to its disk: sda1 -> sda,
// nvme0n1p1 -> nvme0n1. A name with no partition suffix is returned
// unchanged.
func diskOfPartition(partition string) string {
	disk := strings.TrimRight(partition, "0123456789")
	if disk == partition {
		return partition
	}

	if strings.HasSuffix(disk, "p") && len(disk) > 1 &&
		disk[len(disk)-2] >= '0' && disk[len(disk)-2] <= '9' {
		disk = disk[:len(disk)-1]
	}

	return disk
}
