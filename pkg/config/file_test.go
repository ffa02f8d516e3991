package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFileMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}

	if got := f.UpdateInterval(); got != 30*time.Second {
		t.Errorf("UpdateInterval() = %v, want 30s", got)
	}
	if got := f.LowBatteryUpdateInterval(); got != 10*time.Second {
		t.Errorf("LowBatteryUpdateInterval() = %v, want 10s", got)
	}
	if got := f.LowBatteryThreshold(); got != 15 {
		t.Errorf("LowBatteryThreshold() = %d, want 15", got)
	}
	if got := f.CriticalBatteryThreshold(); got != 5 {
		t.Errorf("CriticalBatteryThreshold() = %d, want 5", got)
	}
	if got := f.SmoothingWindow(); got != 5 {
		t.Errorf("SmoothingWindow() = %d, want 5", got)
	}
	if got := f.IconThresholds(); got.Full != 80 || got.Good != 50 || got.Low != 20 || got.Caution != 10 {
		t.Errorf("IconThresholds() = %+v, want 80/50/20/10", got)
	}
	if got := f.DefaultPowerMode(); got != "Balanced" {
		t.Errorf("DefaultPowerMode() = %q, want Balanced", got)
	}
	if _, ok := f.PowerModes()["Power Saver"]; !ok {
		t.Error(`PowerModes() missing "Power Saver" preset`)
	}
}

func TestFileLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")
	content := `{
  "updateIntervalSeconds": 60,
  "lowBatteryThreshold": 25,
  "showPercentageLabel": false
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}

	if got := f.UpdateInterval(); got != time.Minute {
		t.Errorf("UpdateInterval() = %v, want 1m", got)
	}
	if got := f.LowBatteryThreshold(); got != 25 {
		t.Errorf("LowBatteryThreshold() = %d, want 25", got)
	}
	if f.ShowPercentageLabel() {
		t.Error("ShowPercentageLabel() = true, want false")
	}
	// Fields absent from the file keep their defaults.
	if got := f.CriticalBatteryThreshold(); got != 5 {
		t.Errorf("CriticalBatteryThreshold() = %d, want default 5", got)
	}
}

func TestFileSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	f.SetLowBatteryThreshold(30)
	f.SetShowPercentageLabel(false)
	f.SetDefaultPowerMode("Power Saver")
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.LowBatteryThreshold(); got != 30 {
		t.Errorf("LowBatteryThreshold() after roundtrip = %d, want 30", got)
	}
	if g.ShowPercentageLabel() {
		t.Error("ShowPercentageLabel() after roundtrip = true, want false")
	}
	if got := g.DefaultPowerMode(); got != "Power Saver" {
		t.Errorf("DefaultPowerMode() after roundtrip = %q, want Power Saver", got)
	}
}

func TestFileEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}
	if got := f.UpdateInterval(); got != 30*time.Second {
		t.Errorf("UpdateInterval() = %v, want default 30s", got)
	}
}

func TestSetLowBatteryThresholdValidates(t *testing.T) {
	f := NewFileFromConfig(&RawFileConfig{}, "")

	defer func() {
		if recover() == nil {
			t.Fatal("SetLowBatteryThreshold(0) should panic")
		}
	}()
	f.SetLowBatteryThreshold(0)
}
