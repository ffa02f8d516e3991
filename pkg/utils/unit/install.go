// Package unit installs and removes the battray systemd user units.
package unit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/hack"
)

const (
	daemonUnitName = "battray-daemon.service"
	trayUnitName   = "battray-tray.service"
)

// unitDir returns the systemd user unit directory, honoring
// XDG_CONFIG_HOME.
func unitDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "systemd", "user"), nil
}

func Install() error {
	// Get the path to the current executable
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get the path to the current executable: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}

	err = os.Chmod(exePath, 0755)
	if err != nil {
		return fmt.Errorf("failed to chmod the current executable to 0755: %w", err)
	}

	logrus.Infof("current executable path: %s", exePath)

	dir, err := unitDir()
	if err != nil {
		return err
	}

	logrus.Infof("writing systemd user units to %s", dir)

	// mkdir -p
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	units := map[string]string{
		daemonUnitName: hack.DaemonUnitTemplate,
		trayUnitName:   hack.TrayUnitTemplate,
	}

	for name, tmpl := range units {
		unitPath := filepath.Join(dir, name)

		// warn if the file already exists
		_, err = os.Stat(unitPath)
		if err == nil {
			logrus.Warnf("%s already exists, overwriting", unitPath)
		}

		content := strings.ReplaceAll(tmpl, "/path/to/battray", exePath)
		err = os.WriteFile(unitPath, []byte(content), 0644)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", unitPath, err)
		}
	}

	logrus.Infof("starting battray")

	err = exec.Command("systemctl", "--user", "daemon-reload").Run()
	if err != nil {
		return fmt.Errorf("failed to reload systemd user units: %w", err)
	}

	err = exec.Command("systemctl", "--user", "enable", "--now", daemonUnitName, trayUnitName).Run()
	if err != nil {
		return fmt.Errorf("failed to enable battray units: %w", err)
	}

	return nil
}
