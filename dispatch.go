package raidcheck

import "fmt"

// CheckAll runs the parser for every discovered instance and merges the
// findings. An empty result from a parser is ambiguous between "genuinely
// no disks" and "parse failure", so it is escalated against the override
// policy rather than silently accepted; the same applies to a result that
// contains no logical-drive finding at all.
func CheckAll(instances []ControllerInstance, reg Registry, ov Overrides) []Finding {
	all := []Finding{}

	for _, inst := range instances {
		drv, ok := reg[inst.Driver]
		if !ok {
			continue
		}

		all = append(all, escalate(inst, drv.Check(inst.Adapter, inst.Host), ov)...)
	}

	return all
}

func escalate(inst ControllerInstance, found []Finding, ov Overrides) []Finding {
	if len(found) == 0 {
		return []Finding{ackOrWarn(inst, ov, ConcernNoDisks, "no disks found")}
	}

	for _, f := range found {
		if f.Kind == LogicalDrive {
			return found
		}
	}

	return append(found,
		ackOrWarn(inst, ov, ConcernNoLogicalDrives, "no logical drives found"))
}

func ackOrWarn(inst ControllerInstance, ov Overrides, concern, what string) Finding {
	if ov.Acknowledged(inst.Driver, inst.Adapter, concern) {
		return Note(OK, inst.Driver, inst.Adapter, what+" (acknowledged)")
	}

	return Note(Warning, inst.Driver, inst.Adapter,
		fmt.Sprintf("%s (touch %s to acknowledge)",
			what, ov.SentinelPath(inst.Driver, inst.Adapter, concern)))
}
