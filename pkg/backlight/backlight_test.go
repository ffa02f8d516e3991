package backlight

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func fakeDevice(t *testing.T, root string, brightness, max int) string {
	t.Helper()
	dir := filepath.Join(root, "intel_backlight")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeAttr(t, dir, "brightness", brightness)
	writeAttr(t, dir, "max_brightness", max)
	return dir
}

func writeAttr(t *testing.T, dir, name string, v int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(strconv.Itoa(v)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindAt(t *testing.T) {
	root := t.TempDir()
	if _, err := FindAt(root); err == nil {
		t.Fatal("FindAt() on empty root should fail")
	}

	fakeDevice(t, root, 500, 1000)
	d, err := FindAt(root)
	if err != nil {
		t.Fatalf("FindAt() error: %v", err)
	}
	if d == nil {
		t.Fatal("FindAt() returned nil device")
	}
}

func TestPercent(t *testing.T) {
	root := t.TempDir()
	fakeDevice(t, root, 600, 1000)

	d, err := FindAt(root)
	if err != nil {
		t.Fatal(err)
	}
	pct, err := d.Percent()
	if err != nil {
		t.Fatalf("Percent() error: %v", err)
	}
	if pct != 60 {
		t.Fatalf("Percent() = %d, want 60", pct)
	}
}

func TestSetPercent(t *testing.T) {
	root := t.TempDir()
	dir := fakeDevice(t, root, 1000, 1000)

	d, err := FindAt(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetPercent(40); err != nil {
		t.Fatalf("SetPercent() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "brightness"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "400" {
		t.Fatalf("brightness = %q, want 400", got)
	}
}

func TestSetPercentClamps(t *testing.T) {
	root := t.TempDir()
	dir := fakeDevice(t, root, 1000, 1000)

	d, err := FindAt(root)
	if err != nil {
		t.Fatal(err)
	}

	// Zero must not turn the display off entirely.
	if err := d.SetPercent(0); err != nil {
		t.Fatalf("SetPercent(0) error: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "brightness"))
	if got := strings.TrimSpace(string(data)); got != "10" {
		t.Fatalf("brightness after SetPercent(0) = %q, want 10 (1%%)", got)
	}

	if err := d.SetPercent(150); err != nil {
		t.Fatalf("SetPercent(150) error: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "brightness"))
	if got := strings.TrimSpace(string(data)); got != "1000" {
		t.Fatalf("brightness after SetPercent(150) = %q, want 1000", got)
	}
}
