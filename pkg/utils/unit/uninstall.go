package unit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func Uninstall() error {
	logrus.Infof("stopping battray")

	err := exec.Command("systemctl", "--user", "disable", "--now", daemonUnitName, trayUnitName).Run()
	if err != nil {
		logrus.WithError(err).Warn("failed to stop battray units, removing unit files anyway")
	}

	dir, err := unitDir()
	if err != nil {
		return err
	}

	logrus.Infof("removing systemd user units")

	for _, name := range []string{daemonUnitName, trayUnitName} {
		unitPath := filepath.Join(dir, name)

		// if the file doesn't exist, we don't need to remove it
		_, err = os.Stat(unitPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", unitPath, err)
		}

		err = os.Remove(unitPath)
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", unitPath, err)
		}
	}

	err = exec.Command("systemctl", "--user", "daemon-reload").Run()
	if err != nil {
		return fmt.Errorf("failed to reload systemd user units: %w", err)
	}

	return nil
}
