// Package linux discovers which RAID controllers and software RAID
// arrays are present on the host.
package linux

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"machinerun.io/raidcheck"
)

// procNameToFamily is the primary detection path: the proc_name that a
// controller's kernel driver registers under /sys/class/scsi_host.
var procNameToFamily = map[string]raidcheck.DriverType{
	"megaraid_sas": raidcheck.MegaRAID,
	"megaraid":     raidcheck.MegaRAID,
	"mptsas":       raidcheck.MptSAS,
	"mptspi":       raidcheck.MptSAS,
	"aacraid":      raidcheck.AacRAID,
	"cciss":        raidcheck.CCISS,
	"hpsa":         raidcheck.CCISS,
	"3w-9xxx":      raidcheck.ThreeWare,
	"3w-xxxx":      raidcheck.ThreeWare,
	"3w-sas":       raidcheck.ThreeWare,
}

// moduleToFamily covers controllers that never register a SCSI host but
// do load a kernel module.
var moduleToFamily = map[string]raidcheck.DriverType{
	"iomemory_vsl": raidcheck.FusionIO,
	"fio_driver":   raidcheck.FusionIO,
}

// procDirToFamily covers controllers that only expose themselves through
// a /proc interface in some kernel versions.
var procDirToFamily = map[string]raidcheck.DriverType{
	"driver/cciss": raidcheck.CCISS,
	"mpt":          raidcheck.MptSAS,
	"megaraid":     raidcheck.MegaRAID,
}

// Discoverer enumerates controller instances. SysRoot and ProcRoot exist
// so tests can point the scan at a fixture tree.
type Discoverer struct {
	SysRoot  string
	ProcRoot string
	Log      zerolog.Logger
}

func NewDiscoverer() *Discoverer {
	return &Discoverer{SysRoot: "/sys", ProcRoot: "/proc"}
}

// Discover returns one instance per (family, host), with 0-based adapter
// indexes assigned per family in ascending host-handle order. A family
// surfaced through multiple detection paths yields a single instance.
func (d *Discoverer) Discover() ([]raidcheck.ControllerInstance, error) {
	found := map[raidcheck.DriverType]map[int]string{}

	add := func(family raidcheck.DriverType, hostNum int, handle string) {
		if found[family] == nil {
			found[family] = map[int]string{}
		}

		if _, ok := found[family][hostNum]; !ok {
			found[family][hostNum] = handle
		}
	}

	// a family found through /sys never also needs its fallback path
	addFallback := func(family raidcheck.DriverType, hostNum int, handle string) {
		if found[family] == nil {
			add(family, hostNum, handle)
		}
	}

	if err := d.scanScsiHosts(add); err != nil {
		return nil, err
	}

	d.scanModules(addFallback)
	d.scanProcDirs(addFallback)

	instances := []raidcheck.ControllerInstance{}

	for _, family := range raidcheck.DriverTypes {
		hosts := found[family]
		if hosts == nil {
			continue
		}

		nums := make([]int, 0, len(hosts))
		for n := range hosts {
			nums = append(nums, n)
		}

		sort.Ints(nums)

		for adapter, n := range nums {
			instances = append(instances, raidcheck.ControllerInstance{
				Driver:  family,
				Adapter: adapter,
				Host:    hosts[n],
			})
		}
	}

	if d.hasMdArrays() {
		instances = append([]raidcheck.ControllerInstance{
			{Driver: raidcheck.MDRaid, Adapter: 0, Host: "mdstat"},
		}, instances...)
	}

	return instances, nil
}

func (d *Discoverer) scanScsiHosts(add func(raidcheck.DriverType, int, string)) error {
	pattern := path.Join(d.SysRoot, "class/scsi_host/host*/proc_name")

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return errors.Wrapf(err, "failed to scan %s", pattern)
	}

	for _, p := range matches {
		content, err := os.ReadFile(p)
		if err != nil {
			continue
		}

		hostDir := path.Base(path.Dir(p))

		hostNum, err := strconv.Atoi(strings.TrimPrefix(hostDir, "host"))
		if err != nil {
			continue
		}

		procName := strings.TrimSpace(string(content))

		family, ok := procNameToFamily[procName]
		if !ok {
			d.Log.Debug().
				Str("host", hostDir).
				Str("proc_name", procName).
				Msg("not a recognized RAID driver")

			continue
		}

		add(family, hostNum, hostDir)
	}

	return nil
}

func (d *Discoverer) scanModules(add func(raidcheck.DriverType, int, string)) {
	content, err := os.ReadFile(path.Join(d.ProcRoot, "modules"))
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(content), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if family, ok := moduleToFamily[fields[0]]; ok {
			add(family, 0, "module:"+fields[0])
		}
	}
}

func (d *Discoverer) scanProcDirs(add func(raidcheck.DriverType, int, string)) {
	for dir, family := range procDirToFamily {
		info, err := os.Stat(path.Join(d.ProcRoot, dir))
		if err != nil || !info.IsDir() {
			continue
		}

		add(family, 0, "proc:"+dir)
	}
}

// hasMdArrays - true if /proc/mdstat lists at least one md device.
func (d *Discoverer) hasMdArrays() bool {
	content, err := os.ReadFile(path.Join(d.ProcRoot, "mdstat"))
	if err != nil {
		return false
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "md") && strings.Contains(line, " : ") {
			return true
		}
	}

	return false
}
