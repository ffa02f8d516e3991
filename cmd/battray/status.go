package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tlind/battray/pkg/classify"
	"github.com/tlind/battray/pkg/config"
	"github.com/tlind/battray/pkg/powerinfo"
)

type statusData struct {
	snapshot *powerinfo.Snapshot
	mode     string
	config   *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	snap, err := apiClient.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to get battery snapshot: %w", err)
	}

	mode, err := apiClient.GetProfile()
	if err != nil {
		// Not every system has power-profiles-daemon.
		mode = ""
	}

	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		snapshot: snap,
		mode:     mode,
		config:   conf,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current status of battray",
		Long:    `Get battery state, time estimates, and configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Get various info first.
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			conf := config.NewFileFromConfig(data.config, "")
			snap := data.snapshot

			// Battery state.
			cmd.Println(bold("Battery status:"))

			if !snap.HasBattery() {
				cmd.Println("  No battery detected.")
			} else {
				cmd.Printf("  Current charge: %s\n", bold("%d%%", snap.Percentage))

				state := "not charging"
				switch snap.Status {
				case powerinfo.StatusCharging:
					state = color.GreenString("charging")
				case powerinfo.StatusDischarging:
					state = color.RedString("discharging")
				case powerinfo.StatusFull:
					state = "full"
				}
				cmd.Printf("  State: %s\n", bold("%s", state))

				timeText := classify.TimeText(snap.EstimateKind, snap.EstimateMinutes, snap.Status)
				cmd.Printf("  Time estimate: %s\n", bold("%s", timeText))

				if icon, err := apiClient.GetIcon(); err == nil {
					cmd.Printf("  Icon: %s\n", bold("%s", icon))
				}

				if snap.HealthPercent >= 0 {
					healthStr := bold("%d%%", snap.HealthPercent)
					if snap.HealthPercent <= conf.HealthWarningThreshold() {
						healthStr = color.New(color.Bold, color.FgRed).Sprintf("%d%%", snap.HealthPercent)
					}
					cmd.Printf("  Health: %s\n", healthStr)
				}

				if snap.PowerDrawWatts > 0 {
					watts := snap.PowerDrawWatts
					var rateStr string
					if snap.Charging() {
						rateStr = color.New(color.Bold, color.FgGreen).Sprintf("+%.1f W", watts)
					} else {
						rateStr = color.New(color.Bold, color.FgRed).Sprintf("-%.1f W", watts)
					}
					cmd.Printf("  Power draw: %s\n", rateStr)
				}

				if snap.Voltage > 0 {
					cmd.Printf("  Voltage: %s\n", bold("%.2f V", snap.Voltage))
				}
			}

			if data.mode != "" {
				cmd.Printf("  Power mode: %s\n", bold("%s", data.mode))
			}

			cmd.Println()

			// Config.
			cmd.Println(bold("Battery configuration:"))
			cmd.Printf("  Update interval: %s (low battery: %s)\n",
				bold("%s", conf.UpdateInterval()), bold("%s", conf.LowBatteryUpdateInterval()))
			cmd.Printf("  Low battery threshold: %s\n", bold("%d%%", conf.LowBatteryThreshold()))
			cmd.Printf("  Critical battery threshold: %s\n", bold("%d%%", conf.CriticalBatteryThreshold()))
			cmd.Printf("  Health warning threshold: %s\n", bold("%d%%", conf.HealthWarningThreshold()))
			cmd.Printf("  Time estimate smoothing window: %s\n", bold("%d samples", conf.SmoothingWindow()))
			cmd.Printf("  Show percentage label: %s\n", bool2Text(conf.ShowPercentageLabel()))
			cmd.Printf("  Default power mode: %s\n", bold("%s", conf.DefaultPowerMode()))
			return nil
		},
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
