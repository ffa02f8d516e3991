package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tlind/battray/pkg/profile"
	"github.com/tlind/battray/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "refresh",
		Short:   "Poll the battery now",
		GroupID: gBasic,
		Long: `Poll the battery now.

Forces an immediate battery poll instead of waiting for the next
scheduled one. Useful after plugging or unplugging the charger.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ret, err := apiClient.Refresh()
			if err != nil {
				return fmt.Errorf("failed to refresh: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully refreshed battery state")

			return nil
		},
	}
}

func NewThresholdCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "threshold [percentage]",
		Short:   "Set low battery warning threshold",
		GroupID: gBasic,
		Long: `Set low battery warning threshold.

This is a percentage from 1 to 50. When the battery charge drops below
this threshold while discharging, a low battery notification is sent and
polling switches to the faster low-battery interval. The critical
notification threshold is configured separately in the config file.`,
		RunE: func(_ *cobra.Command, args []string) error {
			threshold, err := parseIntArg(args, "threshold")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetLowThreshold(threshold)
			if err != nil {
				return fmt.Errorf("failed to set threshold: %v", err)
			}

			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}

			logrus.Infof("successfully set low battery threshold to %d%%", threshold)

			return nil
		},
	}
}

func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   "Get or set the power mode",
		GroupID: gBasic,
		Long: `Get or set the power mode.

A power mode bundles a platform power profile with a screen brightness
level. The built-in modes are Performance, Balanced, and Power Saver;
additional modes can be defined in the config file. Switching modes uses
powerprofilesctl, so power-profiles-daemon must be installed.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Get the current power mode",
			RunE: func(cmd *cobra.Command, _ []string) error {
				mode, err := apiClient.GetProfile()
				if err != nil {
					return fmt.Errorf("failed to get power mode: %v", err)
				}

				cmd.Println(mode)

				return nil
			},
		},
		&cobra.Command{
			Use:   "set [mode]",
			Short: "Set the power mode",
			RunE: func(_ *cobra.Command, args []string) error {
				if len(args) != 1 {
					return fmt.Errorf("invalid number of arguments, expected a mode name (e.g. %s)",
						strings.Join(profile.Available(), ", "))
				}

				ret, err := apiClient.SetProfile(args[0])
				if err != nil {
					return fmt.Errorf("failed to set power mode: %v", err)
				}

				if ret != "" {
					logrus.Infof("daemon responded: %s", ret)
				}

				logrus.Infof("successfully set power mode to %s", args[0])

				return nil
			},
		},
	)

	return cmd
}

func NewBrightnessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "brightness",
		Short:   "Get or set screen brightness",
		GroupID: gBasic,
		Long: `Get or set screen brightness.

Brightness is a percentage from 1 to 100. Writes go through the kernel's
backlight interface, falling back to brightnessctl when no backlight
device is available.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Get the current screen brightness",
			RunE: func(cmd *cobra.Command, _ []string) error {
				pct, err := apiClient.GetBrightness()
				if err != nil {
					return fmt.Errorf("failed to get brightness: %v", err)
				}

				cmd.Printf("%d%%\n", pct)

				return nil
			},
		},
		&cobra.Command{
			Use:   "set [percentage]",
			Short: "Set the screen brightness",
			RunE: func(_ *cobra.Command, args []string) error {
				pct, err := parseIntArg(args, "brightness")
				if err != nil {
					return err
				}

				ret, err := apiClient.SetBrightness(pct)
				if err != nil {
					return fmt.Errorf("failed to set brightness: %v", err)
				}

				if ret != "" {
					logrus.Infof("daemon responded: %s", ret)
				}

				logrus.Infof("successfully set brightness to %d%%", pct)

				return nil
			},
		},
	)

	return cmd
}
