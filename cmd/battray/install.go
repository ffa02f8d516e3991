package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tlind/battray/pkg/config"
	unitutils "github.com/tlind/battray/pkg/utils/unit"
)

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install battray (per-user)",
		GroupID: gInstallation,
		Long: `Install battray as systemd user units.

This makes the battray daemon and tray icon run in the background and
automatically start when you log in. No root privileges are needed
because everything is installed per-user.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			err = unitutils.Install()
			if err != nil {
				return fmt.Errorf("failed to install units: %v", err)
			}

			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("systemd will use the current binary (%s) at startup so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run ``battray install'' again.\n", exePath)

			return nil
		},
	}

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall battray (per-user)",
		GroupID: gInstallation,
		Long: `Uninstall the battray systemd user units.

This stops the battray daemon and tray icon and removes their unit
files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := unitutils.Uninstall()
			if err != nil {
				return fmt.Errorf("failed to uninstall units: %v", err)
			}

			fmt.Println("successfully uninstalled")

			cmd.Printf("Your config is kept in %s, in case you want to use `battray' again. If you want a complete uninstall, you can remove both config file and battray itself manually.\n", configPath)

			return nil
		},
	}

	return cmd
}
