package aacraid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"machinerun.io/raidcheck"
)

var getConfigOutput = `Controllers found: 1
----------------------------------------------------------------------
Controller information
----------------------------------------------------------------------
   Controller Status                        : Optimal
   Channel description                      : SAS/SATA
   Controller Model                         : Adaptec 5805
   Controller Serial Number                 : 1C21301A7B6
   Temperature                              : 46 C/ 114 F (Normal)
   --------------------------------------------------------
   Controller Battery Information
   --------------------------------------------------------
   Status                                   : Optimal
   Over temperature                         : No
   Capacity remaining                       : 99 percent
   Time remaining (at current draw)         : 3 days, 1 hours, 11 minutes
----------------------------------------------------------------------
Logical device information
----------------------------------------------------------------------
Logical device number 0
   Logical device name                      : RAID5-A
   RAID level                               : 5
   Status of logical device                 : Optimal
   Size                                     : 857088 MB
   Read-cache mode                          : Enabled
Logical device number 1
   Logical device name                      : RAID1-B
   RAID level                               : 1
   Status of logical device                 : Degraded
   Size                                     : 139990 MB
----------------------------------------------------------------------
Physical Device information
----------------------------------------------------------------------
      Device #0
         Device is a Hard drive
         State                              : Online
         Supported                          : Yes
         Transfer Speed                     : SAS 3.0 Gb/s
         Vendor                             : SEAGATE
         Model                              : ST3300656SS
      Device #1
         Device is a Hard drive
         State                              : Rebuilding
         Vendor                             : SEAGATE
         Model                              : ST3300656SS
      Device #2
         Device is an Enclosure services device
         Transfer Speed                     : SAS 3.0 Gb/s
         Vendor                             : ADAPTEC
`

func TestParseGetConfig(t *testing.T) {
	found := parseGetConfig(0, strings.Split(getConfigOutput, "\n"))

	if len(found) != 5 {
		t.Fatalf("expected 5 findings, got %d: %v", len(found), found)
	}

	assert.Equal(t, raidcheck.OK, found[0].Severity)
	assert.Equal(t, "aacraid:0:ctl:status Optimal", found[0].Message)

	assert.Equal(t, "aacraid:0:ld:0 Optimal", found[1].Message)
	assert.Equal(t, raidcheck.OK, found[1].Severity)

	assert.Equal(t, "aacraid:0:ld:1 Degraded", found[2].Message)
	assert.Equal(t, raidcheck.Critical, found[2].Severity)

	assert.Equal(t, "aacraid:0:phy:0 Online", found[3].Message)
	assert.Equal(t, raidcheck.OK, found[3].Severity)

	assert.Equal(t, "aacraid:0:phy:1 Rebuilding", found[4].Message)
	assert.Equal(t, raidcheck.Warning, found[4].Severity)
}

func batteryOutput(status, capacity, overTemp string) string {
	return `Controllers found: 1
----------------------------------------------------------------------
Controller information
----------------------------------------------------------------------
   Controller Status                        : Optimal
   --------------------------------------------------------
   Controller Battery Information
   --------------------------------------------------------
   Status                                   : ` + status + `
   Over temperature                         : ` + overTemp + `
   Capacity remaining                       : ` + capacity + ` percent
`
}

func TestBatteryChargeThresholds(t *testing.T) {
	for _, d := range []struct {
		capacity string
		expected raidcheck.Severity
	}{
		{"23", raidcheck.Critical},
		{"40", raidcheck.Warning},
		{"80", raidcheck.OK},
	} {
		out := batteryOutput("Charging", d.capacity, "No")
		found := parseGetConfig(0, strings.Split(out, "\n"))

		if len(found) != 1 {
			t.Fatalf("expected 1 finding, got %d: %v", len(found), found)
		}

		assert.Equal(t, d.expected, found[0].Severity,
			"capacity %s%%", d.capacity)
	}
}

func TestBatteryChargedIgnoresCapacity(t *testing.T) {
	out := batteryOutput("Optimal", "10", "No")
	found := parseGetConfig(0, strings.Split(out, "\n"))

	assert.Equal(t, raidcheck.OK, found[0].Severity)
}

func TestBatteryOverTemperatureDowngrades(t *testing.T) {
	out := batteryOutput("Optimal", "99", "Yes")
	found := parseGetConfig(0, strings.Split(out, "\n"))

	assert.Equal(t, raidcheck.Warning, found[0].Severity)
	assert.Contains(t, found[0].Message, "over temperature")
}

func TestParseGetConfigEmpty(t *testing.T) {
	assert.Empty(t, parseGetConfig(0, []string{}))
}
