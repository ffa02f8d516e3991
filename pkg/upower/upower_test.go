package upower

import (
	"math"
	"testing"

	"github.com/tlind/battray/pkg/powerinfo"
)

const dischargingOutput = `  native-path:          BAT0
  vendor:               SMP
  model:                L17M3PB0
  power supply:         yes
  updated:              Thu 06 Aug 2026 10:12:43 (17 seconds ago)
  battery
    present:             yes
    rechargeable:        yes
    state:               discharging
    energy:              30.1 Wh
    energy-rate:         11.217 W
    voltage:             11.813 V
    time to empty:       2.7 hours
    percentage:          63%
    capacity:            81.5%
`

const chargingOutput = `  battery
    state:               charging
    energy-rate:         28.466 W
    time to full:        48.3 minutes
    percentage:          71%
`

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		wantKind    powerinfo.EstimateKind
		wantMinutes float64
	}{
		{
			name:        "time to empty in hours",
			output:      dischargingOutput,
			wantKind:    powerinfo.EstimateRemaining,
			wantMinutes: 162,
		},
		{
			name:        "time to full in minutes",
			output:      chargingOutput,
			wantKind:    powerinfo.EstimateUntilFull,
			wantMinutes: 48.3,
		},
		{
			name:        "singular unit",
			output:      "    time to empty:       1 hour\n",
			wantKind:    powerinfo.EstimateRemaining,
			wantMinutes: 60,
		},
		{
			name:        "comma decimal separator",
			output:      "    time to full:        1,5 hours\n",
			wantKind:    powerinfo.EstimateUntilFull,
			wantMinutes: 90,
		},
		{
			name:     "no time line",
			output:   "  battery\n    state: fully-charged\n    percentage: 100%\n",
			wantKind: powerinfo.EstimateNone,
		},
		{
			name:     "empty output",
			output:   "",
			wantKind: powerinfo.EstimateNone,
		},
		{
			name:     "zero value discarded",
			output:   "    time to empty:       0 minutes\n",
			wantKind: powerinfo.EstimateNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.output)
			if got.Kind != tt.wantKind {
				t.Fatalf("Parse() kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if math.Abs(got.Minutes-tt.wantMinutes) > 1e-9 {
				t.Fatalf("Parse() minutes = %v, want %v", got.Minutes, tt.wantMinutes)
			}
		})
	}
}

func TestNewReaderDevicePath(t *testing.T) {
	r := NewReader("/sys/class/power_supply/BAT1")
	want := "/org/freedesktop/UPower/devices/battery_BAT1"
	if r.devicePath != want {
		t.Fatalf("devicePath = %q, want %q", r.devicePath, want)
	}
}
