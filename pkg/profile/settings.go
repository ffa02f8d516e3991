package profile

import (
	"context"
	"os"
	"os/exec"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// SettingsCommand chooses the power-settings dialog for the current
// desktop environment, based on XDG_CURRENT_DESKTOP.
func SettingsCommand() []string {
	desktop := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	switch {
	case strings.Contains(desktop, "gnome"), strings.Contains(desktop, "unity"):
		return []string{"gnome-control-center", "power"}
	case strings.Contains(desktop, "kde"):
		return []string{"systemsettings", "kcm_powerdevil"}
	case strings.Contains(desktop, "xfce"):
		return []string{"xfce4-power-manager-settings"}
	default:
		return []string{"gnome-control-center", "power"}
	}
}

// OpenSettings launches the settings dialog without waiting for it.
func OpenSettings(ctx context.Context) error {
	args := SettingsCommand()
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return pkgerrors.Wrapf(err, "failed to launch %s", args[0])
	}
	// Detach so a long-lived dialog does not leave a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
