package fio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"machinerun.io/raidcheck"
)

var statusTwoCards = `
Found 2 ioMemory devices in this system

Adapter: Single Controller Adapter
	Fusion-io ioDrive2 1.205TB, Product Number:F00-001-1T20-CS-0001

fct0	Attached
	ioDrive2 Adapter Controller, PN:PA004137009
	Firmware v7.1.17, rev 116786 Public
	1205.00 GBytes device size
	Internal temperature: 46.75 degC, max 49.21 degC
	Media status: Healthy; Reserves: 100.00%, warn at 10.00%

fct1	Attached
	ioDrive2 Adapter Controller, PN:PA004137009
	Firmware v7.1.17, rev 116786 Public
	1205.00 GBytes device size
	Internal temperature: 51.67 degC, max 52.16 degC
	Media status: Nearing wearout; Reserves: 12.00%, warn at 10.00%
`

func TestParseStatus(t *testing.T) {
	found := parseStatus(0, strings.Split(statusTwoCards, "\n"))

	if len(found) != 2 {
		t.Fatalf("expected 2 findings, got %d: %v", len(found), found)
	}

	assert.Equal(t, raidcheck.OK, found[0].Severity)
	assert.Equal(t, "fusionio:0:ld:fct0 Attached, media Healthy", found[0].Message)

	assert.Equal(t, raidcheck.Warning, found[1].Severity)
	assert.Equal(t, "fusionio:0:ld:fct1 Attached, media Nearing wearout", found[1].Message)
}

func TestParseStatusDetached(t *testing.T) {
	lines := []string{
		"fct0	Detached",
		"	Media status: Healthy; Reserves: 100.00%, warn at 10.00%",
	}

	found := parseStatus(0, lines)

	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d: %v", len(found), found)
	}

	assert.Equal(t, raidcheck.Critical, found[0].Severity)
	assert.Equal(t, "fusionio:0:ld:fct0 Detached, media Healthy", found[0].Message)
}

func TestParseStatusUnknownMedia(t *testing.T) {
	lines := []string{
		"fct0	Attached",
		"	Media status: Write reduced; Reserves: 4.00%, warn at 10.00%",
	}

	found := parseStatus(0, lines)

	if len(found) != 1 {
		t.Fatalf("expected 1 finding, got %d: %v", len(found), found)
	}

	assert.Equal(t, raidcheck.Critical, found[0].Severity)
	assert.Equal(t, "fusionio:0:ld:fct0 Attached, media Write reduced", found[0].Message)
}

func TestParseStatusNoDevices(t *testing.T) {
	assert.Empty(t, parseStatus(0, []string{"Found 0 ioMemory devices in this system"}))
}

func TestMediaState(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"Media status: Healthy; Reserves: 100.00%, warn at 10.00%", "Healthy"},
		{"Media status: Nearing wearout; Reserves: 9.80%, warn at 10.00%", "Nearing wearout"},
		{"Media status: Healthy", "Healthy"},
	} {
		assert.Equal(t, tc.want, mediaState(tc.in))
	}
}
