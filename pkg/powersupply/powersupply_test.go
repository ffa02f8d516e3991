package powersupply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tlind/battray/pkg/powerinfo"
)

// fakeSupply builds a power-supply directory under root with the given
// attribute files.
func fakeSupply(t *testing.T, root, name string, attrs map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for attr, value := range attrs {
		if err := os.WriteFile(filepath.Join(dir, attr), []byte(value+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestReaderDetectsBatteryByType(t *testing.T) {
	root := t.TempDir()
	bat := fakeSupply(t, root, "BAT0", map[string]string{
		"type":     "Battery",
		"capacity": "57",
		"status":   "Discharging",
	})
	fakeSupply(t, root, "AC", map[string]string{
		"type":   "Mains",
		"online": "0",
	})

	r := NewReaderAt(root, nil)
	if !r.HasBattery() {
		t.Fatal("expected a battery to be detected")
	}
	if r.BatteryPath() != bat {
		t.Fatalf("BatteryPath() = %q, want %q", r.BatteryPath(), bat)
	}

	online, ok := r.ACOnline()
	if !ok || online {
		t.Fatalf("ACOnline() = %v, %v, want false, true", online, ok)
	}
}

func TestReaderPrefersConfiguredCandidates(t *testing.T) {
	root := t.TempDir()
	fakeSupply(t, root, "BAT0", map[string]string{"type": "Battery"})
	bat1 := fakeSupply(t, root, "BAT1", map[string]string{"type": "Battery"})

	r := NewReaderAt(root, []string{filepath.Join(root, "missing"), bat1})
	if r.BatteryPath() != bat1 {
		t.Fatalf("BatteryPath() = %q, want configured candidate %q", r.BatteryPath(), bat1)
	}
}

func TestSnapshotReadsAttributes(t *testing.T) {
	root := t.TempDir()
	fakeSupply(t, root, "BAT0", map[string]string{
		"type":               "Battery",
		"capacity":           "57",
		"status":             "Discharging",
		"energy_full":        "40000000",
		"energy_full_design": "50000000",
		"power_now":          "12500000",
		"voltage_now":        "12300000",
	})

	r := NewReaderAt(root, nil)
	s := r.Snapshot()

	if s.Percentage != 57 {
		t.Errorf("Percentage = %d, want 57", s.Percentage)
	}
	if s.Status != powerinfo.StatusDischarging {
		t.Errorf("Status = %q, want Discharging", s.Status)
	}
	if s.HealthPercent != 80 {
		t.Errorf("HealthPercent = %d, want 80", s.HealthPercent)
	}
	if s.PowerDrawWatts != 12.5 {
		t.Errorf("PowerDrawWatts = %v, want 12.5", s.PowerDrawWatts)
	}
	if s.Voltage != 12.3 {
		t.Errorf("Voltage = %v, want 12.3", s.Voltage)
	}
}

func TestSnapshotPercentageFromEnergyCounters(t *testing.T) {
	root := t.TempDir()
	fakeSupply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"status":      "Charging",
		"energy_now":  "30000000",
		"energy_full": "40000000",
	})

	r := NewReaderAt(root, nil)
	s := r.Snapshot()

	if s.Percentage != 75 {
		t.Fatalf("Percentage = %d, want 75 (energy_now/energy_full)", s.Percentage)
	}
}

func TestSnapshotWattsFromVoltageCurrent(t *testing.T) {
	root := t.TempDir()
	fakeSupply(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"capacity":    "50",
		"status":      "Discharging",
		"voltage_now": "12000000",
		"current_now": "-2000000",
	})

	r := NewReaderAt(root, nil)
	s := r.Snapshot()

	if s.PowerDrawWatts != 24 {
		t.Fatalf("PowerDrawWatts = %v, want 24 (|voltage*current|)", s.PowerDrawWatts)
	}
}

func TestSnapshotDegradesOnUnreadableAttributes(t *testing.T) {
	root := t.TempDir()
	fakeSupply(t, root, "BAT0", map[string]string{
		"type":     "Battery",
		"capacity": "garbage",
	})

	r := NewReaderAt(root, nil)
	s := r.Snapshot()

	if s.Percentage != -1 && (s.Percentage < 0 || s.Percentage > 100) {
		t.Fatalf("Percentage = %d, want -1 or a fallback value in 0..100", s.Percentage)
	}
	if s.HealthPercent != -1 {
		t.Fatalf("HealthPercent = %d, want -1", s.HealthPercent)
	}
}
