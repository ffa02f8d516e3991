// Package upower obtains battery time estimates by shelling out to the
// upower utility and pattern-matching its text output.
package upower

import (
	"context"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/pkg/powerinfo"
)

// commandTimeout bounds how long a single upower invocation may block
// the poll loop.
const commandTimeout = 5 * time.Second

// Matches e.g. "    time to empty:      1.7 hours" or
// "    time to full:       23.4 minutes".
var timeLineRe = regexp.MustCompile(`(?i)time to (empty|full):\s*([0-9]+(?:[.,][0-9]+)?)\s*(hours?|minutes?)`)

// Reader asks upower for the time estimate of one battery device.
type Reader struct {
	devicePath string
}

// NewReader builds a reader for the battery at the given sysfs path.
// The upower device object is derived from the directory name, e.g.
// BAT0 -> /org/freedesktop/UPower/devices/battery_BAT0.
func NewReader(batteryPath string) *Reader {
	return &Reader{
		devicePath: "/org/freedesktop/UPower/devices/battery_" + filepath.Base(batteryPath),
	}
}

// Read invokes upower and parses the estimate out of its output. A
// missing binary, a timeout, or output without a time line all degrade
// to an empty estimate.
func (r *Reader) Read(ctx context.Context) powerinfo.Estimate {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "upower", "-i", r.devicePath).Output()
	if err != nil {
		logrus.WithError(err).Trace("upower invocation failed")
		return powerinfo.Estimate{}
	}

	return Parse(string(out))
}

// Parse extracts the first time-to-empty or time-to-full line from
// upower output and converts the value to minutes.
func Parse(output string) powerinfo.Estimate {
	m := timeLineRe.FindStringSubmatch(output)
	if m == nil {
		return powerinfo.Estimate{}
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
	if err != nil || value <= 0 {
		return powerinfo.Estimate{}
	}

	minutes := value
	if strings.HasPrefix(strings.ToLower(m[3]), "hour") {
		minutes = value * 60
	}

	kind := powerinfo.EstimateRemaining
	if strings.EqualFold(m[1], "full") {
		kind = powerinfo.EstimateUntilFull
	}

	return powerinfo.Estimate{Kind: kind, Minutes: minutes}
}
