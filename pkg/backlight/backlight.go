// Package backlight controls display brightness through
// /sys/class/backlight, falling back to the brightnessctl utility when
// the sysfs attribute is not writable.
package backlight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultRoot is where the kernel exposes backlight devices.
const DefaultRoot = "/sys/class/backlight"

const commandTimeout = 5 * time.Second

// Device is one backlight controller directory.
type Device struct {
	dir string
}

// Find returns the first backlight device on the system.
func Find() (*Device, error) {
	return FindAt(DefaultRoot)
}

// FindAt is Find with a custom sysfs root, used by tests.
func FindAt(root string) (*Device, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*"))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to glob backlight devices")
	}
	if len(matches) == 0 {
		return nil, pkgerrors.New("no backlight device found")
	}
	return &Device{dir: matches[0]}, nil
}

// Percent returns the current brightness as a percentage of the
// device's maximum.
func (d *Device) Percent() (int, error) {
	cur, err := d.readInt("brightness")
	if err != nil {
		return 0, err
	}
	max, err := d.readInt("max_brightness")
	if err != nil {
		return 0, err
	}
	if max <= 0 {
		return 0, pkgerrors.New("max_brightness is zero")
	}
	return int(float64(cur)/float64(max)*100.0 + 0.5), nil
}

// SetPercent writes the brightness as a percentage of the device's
// maximum. Values are clamped to 1..100 so a preset can never turn the
// display fully off.
func (d *Device) SetPercent(pct int) error {
	if pct < 1 {
		pct = 1
	}
	if pct > 100 {
		pct = 100
	}

	max, err := d.readInt("max_brightness")
	if err != nil {
		return err
	}
	raw := max * pct / 100
	if raw < 1 {
		raw = 1
	}

	path := filepath.Join(d.dir, "brightness")
	if err := os.WriteFile(path, []byte(strconv.Itoa(raw)), 0o644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func (d *Device) readInt(attr string) (int, error) {
	path := filepath.Join(d.dir, attr)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to read %s", path)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to parse %s", path)
	}
	return v, nil
}

// SetPercent adjusts the first backlight device, degrading to
// brightnessctl when the sysfs write is denied (it usually is for
// unprivileged users).
func SetPercent(ctx context.Context, pct int) error {
	if d, err := Find(); err == nil {
		if err := d.SetPercent(pct); err == nil {
			return nil
		}
		logrus.Debug("sysfs brightness write failed, trying brightnessctl")
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	err := exec.CommandContext(ctx, "brightnessctl", "set", fmt.Sprintf("%d%%", pct)).Run()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to set brightness")
	}
	return nil
}

// Percent reads the first backlight device's brightness percentage.
func Percent() (int, error) {
	d, err := Find()
	if err != nil {
		return 0, err
	}
	return d.Percent()
}
