// Package profile switches platform power profiles via powerprofilesctl
// and locates the desktop environment's power settings dialog.
package profile

import (
	"context"
	"os/exec"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Platform profile names understood by powerprofilesctl.
const (
	Performance = "performance"
	Balanced    = "balanced"
	PowerSaver  = "power-saver"
)

const commandTimeout = 5 * time.Second

// Available lists the platform profiles in menu order.
func Available() []string {
	return []string{Performance, Balanced, PowerSaver}
}

// Valid reports whether name is a known platform profile.
func Valid(name string) bool {
	switch name {
	case Performance, Balanced, PowerSaver:
		return true
	}
	return false
}

// Current returns the active platform profile, or "" when
// powerprofilesctl is unavailable.
func Current(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "powerprofilesctl", "get").Output()
	if err != nil {
		logrus.WithError(err).Trace("powerprofilesctl get failed")
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Set switches the active platform profile.
func Set(ctx context.Context, name string) error {
	if !Valid(name) {
		return pkgerrors.Errorf("unknown power profile %q", name)
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, "powerprofilesctl", "set", name).Run(); err != nil {
		return pkgerrors.Wrapf(err, "failed to set power profile %q", name)
	}
	return nil
}
