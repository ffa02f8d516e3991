// Package classify maps battery readouts to icon names, display strings
// and notification levels via ordered threshold comparisons.
package classify

import (
	"fmt"
	"strings"

	"github.com/tlind/battray/pkg/powerinfo"
)

// Thresholds are the ordered icon-category cutoffs, in percent. A
// percentage at or above a cutoff falls into that category.
type Thresholds struct {
	Full    int `json:"full"`
	Good    int `json:"good"`
	Low     int `json:"low"`
	Caution int `json:"caution"`
}

// DefaultThresholds match the freedesktop battery icon set.
var DefaultThresholds = Thresholds{
	Full:    80,
	Good:    50,
	Low:     20,
	Caution: 10,
}

// IconName returns the themed icon name for the given battery level and
// status. pct < 0 means the battery was not detected.
func IconName(pct int, status string, t Thresholds) string {
	if pct < 0 {
		return "battery-missing-symbolic"
	}

	suffix := "-symbolic"
	if strings.EqualFold(status, powerinfo.StatusCharging) {
		suffix = "-charging-symbolic"
	}

	switch {
	case pct >= t.Full:
		return "battery-full" + suffix
	case pct >= t.Good:
		return "battery-good" + suffix
	case pct >= t.Low:
		return "battery-low" + suffix
	case pct >= t.Caution:
		return "battery-caution" + suffix
	default:
		return "battery-empty-symbolic"
	}
}

// FormatMinutes renders a duration in minutes as "H hr M min", or
// "M min" when under an hour.
func FormatMinutes(minutes float64) string {
	total := int(minutes + 0.5)
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%d hr %d min", total/60, total%60)
}

// TimeText renders the smoothed estimate for display: "1 hr 23 min
// remaining", "40 min to full", "Fully charged", or "Calculating..."
// when no estimate is available yet.
func TimeText(kind powerinfo.EstimateKind, minutes float64, status string) string {
	switch kind {
	case powerinfo.EstimateRemaining:
		return FormatMinutes(minutes) + " remaining"
	case powerinfo.EstimateUntilFull:
		return FormatMinutes(minutes) + " to full"
	}

	if strings.EqualFold(status, powerinfo.StatusFull) {
		return "Fully charged"
	}
	if strings.EqualFold(status, powerinfo.StatusUnknown) {
		return "Unknown"
	}
	return "Calculating..."
}

// Tooltip builds the tray icon tooltip from the current snapshot values.
func Tooltip(pct int, status, timeText string) string {
	if pct < 0 {
		return "Battery not detected"
	}

	lowerTime := strings.ToLower(timeText)
	switch strings.ToLower(status) {
	case "charging":
		if strings.Contains(lowerTime, "to full") {
			return "Charging - " + timeText
		}
		if strings.Contains(lowerTime, "calculating") {
			return fmt.Sprintf("Charging - %d%%", pct)
		}
		return fmt.Sprintf("Charging - %d%% (%s)", pct, timeText)
	case "discharging":
		if strings.Contains(lowerTime, "remaining") {
			return "Discharging - " + timeText
		}
		if strings.Contains(lowerTime, "calculating") {
			return fmt.Sprintf("On battery - %d%%", pct)
		}
		return fmt.Sprintf("On battery - %d%% (%s)", pct, timeText)
	case "full":
		return "Fully charged"
	case "not charging":
		return fmt.Sprintf("Not charging - %d%%", pct)
	default:
		return fmt.Sprintf("Battery: %d%%", pct)
	}
}

// PercentLabel is the menu row showing the battery percentage.
func PercentLabel(pct int) string {
	if pct < 0 {
		return "Battery: Not detected"
	}
	return fmt.Sprintf("Battery: %d%%", pct)
}

// StatusLabel is the menu row showing the charging status.
func StatusLabel(status string) string {
	return "Status: " + status
}

// TimeLabel is the menu row showing the time estimate.
func TimeLabel(timeText string) string {
	return "Time: " + timeText
}

// HealthLabel is the menu row showing battery health. pct < 0 means
// health could not be read.
func HealthLabel(pct int) string {
	if pct < 0 {
		return "Health: Unknown"
	}
	return fmt.Sprintf("Health: %d%%", pct)
}
