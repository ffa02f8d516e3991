// Package powersupply reads battery state from the kernel's
// /sys/class/power_supply attributes. Every read failure degrades to a
// neutral placeholder instead of an error: a missing attribute must
// never take the poll loop down.
package powersupply

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/pkg/powerinfo"
)

// DefaultRoot is where the kernel exposes power supplies.
const DefaultRoot = "/sys/class/power_supply"

// Reader reads battery attributes from sysfs under a fixed root.
type Reader struct {
	root        string
	batteryPath string
	acPath      string
}

// NewReader looks for a battery at the configured candidate paths first,
// then scans the sysfs root for supplies by type.
func NewReader(candidates []string) *Reader {
	return NewReaderAt(DefaultRoot, candidates)
}

// NewReaderAt is NewReader with a custom sysfs root, used by tests.
func NewReaderAt(root string, candidates []string) *Reader {
	r := &Reader{root: root}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			r.batteryPath = p
			break
		}
	}

	r.detect()

	if r.batteryPath == "" {
		logrus.Warn("no battery found under " + root)
	}
	return r
}

// detect scans the sysfs root for a battery and a mains supply.
func (r *Reader) detect() {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return
	}

	for _, entry := range entries {
		dir := filepath.Join(r.root, entry.Name())
		switch r.readString(filepath.Join(dir, "type")) {
		case "Battery":
			if r.batteryPath == "" {
				r.batteryPath = dir
			}
		case "Mains", "USB", "USB_PD":
			if r.acPath == "" {
				r.acPath = dir
			}
		}
	}
}

// BatteryPath returns the sysfs directory of the detected battery, or ""
// when none was found.
func (r *Reader) BatteryPath() string {
	return r.batteryPath
}

// HasBattery reports whether a battery directory was found.
func (r *Reader) HasBattery() bool {
	return r.batteryPath != ""
}

// ACOnline reports whether a mains supply reports itself online. ok is
// false when no mains supply was found or its state is unreadable.
func (r *Reader) ACOnline() (online, ok bool) {
	if r.acPath == "" {
		return false, false
	}
	v := r.readString(filepath.Join(r.acPath, "online"))
	if v == "" {
		return false, false
	}
	return v == "1", true
}

// Snapshot reads all battery attributes into a fresh snapshot. The time
// estimate fields are left empty; they belong to the estimate source,
// not to sysfs.
func (r *Reader) Snapshot() powerinfo.Snapshot {
	s := powerinfo.NewSnapshot()
	if r.batteryPath == "" {
		readFallback(&s)
		return s
	}

	s.Percentage = r.percentage()
	if st := r.readString(filepath.Join(r.batteryPath, "status")); st != "" {
		s.Status = st
	}
	s.HealthPercent = r.health()
	s.PowerDrawWatts = r.watts()
	s.Voltage = r.voltage()

	if s.Percentage < 0 || s.Status == powerinfo.StatusUnknown {
		readFallback(&s)
	}
	return s
}

// percentage reads capacity, falling back to the energy or charge
// counter pairs when the kernel does not expose a direct percentage.
func (r *Reader) percentage() int {
	if v, err := r.readInt("capacity"); err == nil && v >= 0 && v <= 100 {
		return v
	}

	for _, pair := range [][2]string{
		{"energy_now", "energy_full"},
		{"charge_now", "charge_full"},
	} {
		now, err1 := r.readFloat(pair[0])
		full, err2 := r.readFloat(pair[1])
		if err1 == nil && err2 == nil && full > 0 {
			pct := int(now / full * 100.0)
			if pct > 100 {
				pct = 100
			}
			return pct
		}
	}
	return -1
}

// health compares the battery's current full capacity against its design
// capacity.
func (r *Reader) health() int {
	for _, pair := range [][2]string{
		{"energy_full", "energy_full_design"},
		{"charge_full", "charge_full_design"},
	} {
		full, err1 := r.readFloat(pair[0])
		design, err2 := r.readFloat(pair[1])
		if err1 == nil && err2 == nil && design > 0 {
			pct := int(full / design * 100.0)
			if pct > 100 {
				pct = 100
			}
			return pct
		}
	}
	return -1
}

// watts reads the instantaneous power draw. power_now is in microwatts;
// the voltage*current product is in picowatts.
func (r *Reader) watts() float64 {
	if p, err := r.readFloat("power_now"); err == nil {
		return p / 1e6
	}

	voltage, err1 := r.readFloat("voltage_now")
	current, err2 := r.readFloat("current_now")
	if err1 == nil && err2 == nil {
		w := voltage * current / 1e12
		if w < 0 {
			w = -w
		}
		return w
	}
	return 0
}

// voltage reads voltage_now in microvolts and returns volts.
func (r *Reader) voltage() float64 {
	if v, err := r.readFloat("voltage_now"); err == nil {
		return v / 1e6
	}
	return 0
}

func (r *Reader) readString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (r *Reader) readInt(attr string) (int, error) {
	return strconv.Atoi(r.readString(filepath.Join(r.batteryPath, attr)))
}

func (r *Reader) readFloat(attr string) (float64, error) {
	return strconv.ParseFloat(r.readString(filepath.Join(r.batteryPath, attr)), 64)
}
