package smart

import (
	"fmt"
	"strings"
	"sync"

	"github.com/patrickmn/go-cache"
	"machinerun.io/raidcheck/proc"
)

// smartctl exit status bits we interpret. Status 2 means the device
// could not be opened; bit 4 is a failed self-test we deliberately
// ignore so the parsed health stands.
const (
	rcOpenFailed = 2
	rcChecksum   = 4
)

var toolCandidates = []string{
	"/usr/sbin/smartctl", "/usr/local/sbin/smartctl", "smartctl",
}

// Cache is the process-lifetime health cache. The first lookup for a
// device runs smartctl; later lookups return the stored value
// unconditionally. The mutex keeps the first-caller-populates contract
// intact if checks are ever run in parallel.
type Cache struct {
	run   proc.Commander
	tool  string
	found bool
	mu    sync.Mutex
	store *cache.Cache
}

// NewCache resolves smartctl from the usual locations. If the tool is
// absent every lookup returns the fixed no-smartctl sentinel without
// attempting to run anything.
func NewCache(run proc.Commander) *Cache {
	tool, found := proc.FirstExecutable(toolCandidates...)
	return NewCacheTool(run, tool, found)
}

// NewCacheTool uses an explicitly resolved smartctl path.
func NewCacheTool(run proc.Commander, tool string, found bool) *Cache {
	return &Cache{
		run:   run,
		tool:  tool,
		found: found,
		store: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

func (c *Cache) Health(device string) Info {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.store.Get(device); ok {
		return cached.(Info)
	}

	info := c.probe(device)
	c.store.Set(device, info, cache.NoExpiration)

	return info
}

func (c *Cache) probe(device string) Info {
	if !c.found {
		return Info{Health: HealthNoSmartctl}
	}

	dev := device
	if !strings.ContainsRune(dev, '/') {
		dev = "/dev/" + dev
	}

	lines, rc, err := c.run.RunStatus(c.tool, "-H", "-i", "-T", "conservative", dev)
	if err != nil {
		// the tool exists but never ran; not the same as an absent tool
		return Info{Health: fmt.Sprintf("%s: %s", HealthLaunchFailed, err)}
	}

	info := parseOutput(lines)

	switch rc {
	case 0, rcChecksum:
		// parsed health stands
	case rcOpenFailed:
		info.Health = HealthOpenFailed
	default:
		info.Health = fmt.Sprintf("smartctl-fail-%d", rc)
	}

	return info
}

// parseOutput handles the two smartctl dialects: ATA devices report
// "Device Model:" and "SMART overall-health self-assessment test result:",
// SCSI devices report "Device:" and "SMART Health Status:".
func parseOutput(lines []string) Info {
	info := Info{}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Device Model:"):
			info.Model = fieldValue(line)
		case strings.HasPrefix(line, "Device:"):
			info.Model = fieldValue(line)
		case strings.HasPrefix(line, "User Capacity:"):
			info.Size = fieldValue(line)
		case strings.HasPrefix(line, "SMART overall-health self-assessment test result:"):
			info.Health = fieldValue(line)
		case strings.HasPrefix(line, "SMART Health Status:"):
			health := fieldValue(line)
			if health == "OK" {
				health = HealthPassed
			}

			info.Health = health
		case strings.Contains(line, "Device does not support SMART"):
			info.Health = HealthPreSmart
		}
	}

	return info
}

func fieldValue(line string) string {
	toks := strings.SplitN(line, ":", 2)
	if len(toks) != 2 {
		return ""
	}

	return strings.TrimSpace(toks[1])
}
