package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tlind/battray/pkg/client"
	"github.com/tlind/battray/pkg/tray"
	"github.com/tlind/battray/pkg/version"
)

var (
	logLevel       = "info"
	unixSocketPath = defaultSocketPath()
	configPath     = defaultConfigPath()
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
		gInstallation,
	}
)

var apiClient *client.Client

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "battray.sock")
	}
	return filepath.Join(os.TempDir(), "battray.sock")
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "battray.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "battray.json"
	}
	return filepath.Join(home, ".config", "battray.json")
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: battray daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Have you installed it with 'battray install'?")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Check the ownership and permissions of the daemon socket")
		fmt.Fprintln(os.Stderr, "  - The daemon and the client should run as the same user")
	}
}

func main() {
	// Reduce the number of CPUs used by battray.
	// battray does not need to use much.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(2)
	}
	runtime.LockOSThread()

	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battray",
		Short: "battray is a battery indicator and power tool for Linux",
		Long: `battray is a battery indicator and power tool for Linux.

It polls the kernel's power supply interface, shows a tray icon with
charge and time estimates, sends low battery notifications, and can
switch power profiles and screen brightness.

Website: https://github.com/tlind/battray
Report issues: https://github.com/tlind/battray/issues`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			if clientVersion, daemonVersion, err := getVersion(); err == nil {
				if daemonVersion != clientVersion {
					logrus.WithFields(logrus.Fields{
						"clientVersion": clientVersion,
						"daemonVersion": daemonVersion,
					}).Warn("Version mismatch between client and daemon. battray may not work as expected. Restart the daemon after upgrading to ensure both are the same version.")
				}
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "battray daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewDaemonCommand(),
		NewVersionCommand(),
		NewStatusCommand(),
		NewRefreshCommand(),
		NewThresholdCommand(),
		NewProfileCommand(),
		NewBrightnessCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
		tray.NewTrayCommand(unixSocketPath, gAdvanced),
	)

	return cmd
}

// getVersion returns the client version and the daemon's reported
// version.
func getVersion() (string, string, error) {
	daemonVersion, err := apiClient.GetVersion()
	if err != nil {
		return version.Version, "", err
	}
	return version.Version, daemonVersion, nil
}
