package classify

import (
	"testing"

	"github.com/tlind/battray/pkg/powerinfo"
)

func TestIconName(t *testing.T) {
	tests := []struct {
		name   string
		pct    int
		status string
		want   string
	}{
		{"missing battery", -1, powerinfo.StatusUnknown, "battery-missing-symbolic"},
		{"full at threshold", 80, powerinfo.StatusDischarging, "battery-full-symbolic"},
		{"good just below full", 79, powerinfo.StatusDischarging, "battery-good-symbolic"},
		{"good at threshold", 50, powerinfo.StatusDischarging, "battery-good-symbolic"},
		{"low at threshold", 20, powerinfo.StatusDischarging, "battery-low-symbolic"},
		{"caution at threshold", 10, powerinfo.StatusDischarging, "battery-caution-symbolic"},
		{"empty below caution", 9, powerinfo.StatusDischarging, "battery-empty-symbolic"},
		{"empty at zero", 0, powerinfo.StatusDischarging, "battery-empty-symbolic"},
		{"charging variant", 85, powerinfo.StatusCharging, "battery-full-charging-symbolic"},
		{"charging case-insensitive", 55, "charging", "battery-good-charging-symbolic"},
		{"empty has no charging variant", 3, powerinfo.StatusCharging, "battery-empty-symbolic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IconName(tt.pct, tt.status, DefaultThresholds)
			if got != tt.want {
				t.Fatalf("IconName(%d, %q) = %q, want %q", tt.pct, tt.status, got, tt.want)
			}
		})
	}
}

func TestIconCategoryMonotonic(t *testing.T) {
	// Walking the percentage down must never move the icon to a higher
	// category.
	rank := map[string]int{
		"battery-empty-symbolic":   0,
		"battery-caution-symbolic": 1,
		"battery-low-symbolic":     2,
		"battery-good-symbolic":    3,
		"battery-full-symbolic":    4,
	}

	prev := rank[IconName(100, powerinfo.StatusDischarging, DefaultThresholds)]
	for pct := 99; pct >= 0; pct-- {
		cur := rank[IconName(pct, powerinfo.StatusDischarging, DefaultThresholds)]
		if cur > prev {
			t.Fatalf("icon category increased at %d%%", pct)
		}
		prev = cur
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{45, "45 min"},
		{59, "59 min"},
		{60, "1 hr 0 min"},
		{83, "1 hr 23 min"},
		{150.4, "2 hr 30 min"},
		{0.6, "1 min"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%v) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestTimeText(t *testing.T) {
	tests := []struct {
		name    string
		kind    powerinfo.EstimateKind
		minutes float64
		status  string
		want    string
	}{
		{"remaining", powerinfo.EstimateRemaining, 83, powerinfo.StatusDischarging, "1 hr 23 min remaining"},
		{"until full", powerinfo.EstimateUntilFull, 40, powerinfo.StatusCharging, "40 min to full"},
		{"no estimate while full", powerinfo.EstimateNone, 0, powerinfo.StatusFull, "Fully charged"},
		{"no estimate while discharging", powerinfo.EstimateNone, 0, powerinfo.StatusDischarging, "Calculating..."},
		{"no estimate unknown status", powerinfo.EstimateNone, 0, powerinfo.StatusUnknown, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeText(tt.kind, tt.minutes, tt.status)
			if got != tt.want {
				t.Fatalf("TimeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTooltip(t *testing.T) {
	tests := []struct {
		name     string
		pct      int
		status   string
		timeText string
		want     string
	}{
		{"not detected", -1, powerinfo.StatusUnknown, "Unknown", "Battery not detected"},
		{"charging with estimate", 60, powerinfo.StatusCharging, "40 min to full", "Charging - 40 min to full"},
		{"charging calculating", 60, powerinfo.StatusCharging, "Calculating...", "Charging - 60%"},
		{"discharging with estimate", 57, powerinfo.StatusDischarging, "2 hr 5 min remaining", "Discharging - 2 hr 5 min remaining"},
		{"discharging calculating", 57, powerinfo.StatusDischarging, "Calculating...", "On battery - 57%"},
		{"full", 100, powerinfo.StatusFull, "Fully charged", "Fully charged"},
		{"not charging", 78, powerinfo.StatusNotCharging, "Unknown", "Not charging - 78%"},
		{"unknown status", 42, powerinfo.StatusUnknown, "Unknown", "Battery: 42%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tooltip(tt.pct, tt.status, tt.timeText)
			if got != tt.want {
				t.Fatalf("Tooltip() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlerterFiresOncePerCrossing(t *testing.T) {
	a := NewAlerter(15, 5)

	if got := a.Check(20, powerinfo.StatusDischarging); got != LevelNone {
		t.Fatalf("above threshold: got %v, want none", got)
	}
	if got := a.Check(14, powerinfo.StatusDischarging); got != LevelLow {
		t.Fatalf("first crossing: got %v, want low", got)
	}
	// Continuous discharge below the threshold must not re-fire.
	if got := a.Check(12, powerinfo.StatusDischarging); got != LevelNone {
		t.Fatalf("still below threshold: got %v, want none", got)
	}
	if got := a.Check(5, powerinfo.StatusDischarging); got != LevelCritical {
		t.Fatalf("critical crossing: got %v, want critical", got)
	}
	if got := a.Check(4, powerinfo.StatusDischarging); got != LevelNone {
		t.Fatalf("still critical: got %v, want none", got)
	}
}

func TestAlerterRearmsOnRecovery(t *testing.T) {
	a := NewAlerter(15, 5)

	a.Check(14, powerinfo.StatusDischarging)
	if got := a.Check(30, powerinfo.StatusDischarging); got != LevelNone {
		t.Fatalf("recovered: got %v, want none", got)
	}
	if got := a.Check(14, powerinfo.StatusDischarging); got != LevelLow {
		t.Fatalf("second crossing after recovery: got %v, want low", got)
	}
}

func TestAlerterRearmsOnCharge(t *testing.T) {
	a := NewAlerter(15, 5)

	a.Check(10, powerinfo.StatusDischarging)
	if got := a.Check(10, powerinfo.StatusCharging); got != LevelNone {
		t.Fatalf("charging: got %v, want none", got)
	}
	// Cable pulled again while still below the threshold.
	if got := a.Check(10, powerinfo.StatusDischarging); got != LevelLow {
		t.Fatalf("crossing after charge: got %v, want low", got)
	}
}

func TestAlerterIgnoresUnknownPercentage(t *testing.T) {
	a := NewAlerter(15, 5)
	if got := a.Check(-1, powerinfo.StatusDischarging); got != LevelNone {
		t.Fatalf("unknown percentage: got %v, want none", got)
	}
}
