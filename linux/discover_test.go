package linux

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"machinerun.io/raidcheck"
)

func fixtureDiscoverer(t *testing.T) (*Discoverer, string, string) {
	t.Helper()

	sys := t.TempDir()
	proc := t.TempDir()

	return &Discoverer{SysRoot: sys, ProcRoot: proc}, sys, proc
}

func writeProcName(t *testing.T, sysRoot, host, procName string) {
	t.Helper()

	dir := filepath.Join(sysRoot, "class/scsi_host", host)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "proc_name"), []byte(procName+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeProcFile(t *testing.T, procRoot, name, content string) {
	t.Helper()

	full := filepath.Join(procRoot, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverScsiHosts(t *testing.T) {
	d, sys, _ := fixtureDiscoverer(t)

	writeProcName(t, sys, "host0", "ahci")
	writeProcName(t, sys, "host2", "megaraid_sas")
	writeProcName(t, sys, "host5", "megaraid_sas")
	writeProcName(t, sys, "host3", "aacraid")

	got, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}

	expected := []raidcheck.ControllerInstance{
		{Driver: raidcheck.MegaRAID, Adapter: 0, Host: "host2"},
		{Driver: raidcheck.MegaRAID, Adapter: 1, Host: "host5"},
		{Driver: raidcheck.AacRAID, Adapter: 0, Host: "host3"},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected instances (-want +got):\n%s", diff)
	}
}

func TestDiscoverModuleFallback(t *testing.T) {
	d, _, proc := fixtureDiscoverer(t)

	writeProcFile(t, proc, "modules",
		"iomemory_vsl 2920448 0 - Live 0x0000000000000000\n"+
			"ext4 737280 1 - Live 0x0000000000000000\n")

	got, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}

	expected := []raidcheck.ControllerInstance{
		{Driver: raidcheck.FusionIO, Adapter: 0, Host: "module:iomemory_vsl"},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected instances (-want +got):\n%s", diff)
	}
}

// a family already found through /sys must not gain a second adapter
// from its /proc fallback
func TestDiscoverFallbackDoesNotDuplicate(t *testing.T) {
	d, sys, proc := fixtureDiscoverer(t)

	writeProcName(t, sys, "host1", "mptsas")
	writeProcFile(t, proc, "mpt/summary", "ioc0: LSISAS1068E\n")

	got, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}

	expected := []raidcheck.ControllerInstance{
		{Driver: raidcheck.MptSAS, Adapter: 0, Host: "host1"},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected instances (-want +got):\n%s", diff)
	}
}

func TestDiscoverProcDirFallback(t *testing.T) {
	d, _, proc := fixtureDiscoverer(t)

	writeProcFile(t, proc, "driver/cciss/cciss0", "cciss0: HP Smart Array P400\n")

	got, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}

	expected := []raidcheck.ControllerInstance{
		{Driver: raidcheck.CCISS, Adapter: 0, Host: "proc:driver/cciss"},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected instances (-want +got):\n%s", diff)
	}
}

func TestDiscoverMdstat(t *testing.T) {
	d, sys, proc := fixtureDiscoverer(t)

	writeProcName(t, sys, "host0", "megaraid_sas")
	writeProcFile(t, proc, "mdstat",
		"Personalities : [raid1]\n"+
			"md0 : active raid1 sda1[0] sdb1[1]\n"+
			"      1048512 blocks [2/2] [UU]\n"+
			"\n"+
			"unused devices: <none>\n")

	got, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}

	expected := []raidcheck.ControllerInstance{
		{Driver: raidcheck.MDRaid, Adapter: 0, Host: "mdstat"},
		{Driver: raidcheck.MegaRAID, Adapter: 0, Host: "host0"},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected instances (-want +got):\n%s", diff)
	}
}

func TestDiscoverMdstatWithoutArrays(t *testing.T) {
	d, _, proc := fixtureDiscoverer(t)

	writeProcFile(t, proc, "mdstat",
		"Personalities :\nunused devices: <none>\n")

	got, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 0 {
		t.Errorf("expected no instances, got %v", got)
	}
}

func TestDiscoverNothing(t *testing.T) {
	d, _, _ := fixtureDiscoverer(t)

	got, err := d.Discover()
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 0 {
		t.Errorf("expected no instances, got %v", got)
	}
}
