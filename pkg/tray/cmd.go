package tray

import (
	"context"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tlind/battray/pkg/client"
	"github.com/tlind/battray/pkg/events"
	"github.com/tlind/battray/pkg/notify"
	"github.com/tlind/battray/pkg/version"
)

func NewTrayCommand(unixSocketPath string, groupID string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tray",
		Short:   "Start the battray tray icon",
		GroupID: groupID,
		Long: `Start the battray tray icon.

Requires a graphical session and a running battray daemon. Usually started
by the systemd user unit installed with "battray install".`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
				return pkgerrors.New("no graphical session detected (DISPLAY and WAYLAND_DISPLAY are both unset)")
			}
			Run(unixSocketPath)
			return nil
		},
	}

	return cmd
}

// Run starts the tray icon and blocks until the user quits it.
func Run(unixSocketPath string) {
	apiClient = client.NewClient(unixSocketPath)

	logrus.WithField("version", version.Version).WithField("gitCommit", version.GitCommit).Info("battray tray")

	ctx, cancel := context.WithCancel(context.Background())
	eventCancel = cancel
	go startEventBridge(ctx, apiClient)

	systrayRun()
}

// startEventBridge subscribes to daemon events and turns battery alerts
// into desktop notifications.
func startEventBridge(ctx context.Context, api *client.Client) {
	evCh := api.SubscribeEvents(ctx)

	for ev := range evCh {
		logrus.WithFields(logrus.Fields{
			"event": ev.Name,
			"data":  string(ev.Data),
		}).Debug("new event")

		switch ev.Name {
		case events.BatteryAlert:
			payload, err := events.DecodeAs[events.BatteryAlertEvent](ev)
			if err != nil {
				logrus.WithError(err).Error("failed to decode battery.alert event")
				continue
			}

			urgency := notify.UrgencyNormal
			if payload.Level == "critical" {
				urgency = notify.UrgencyCritical
			}
			notify.Send(ctx, notify.Notification{
				Title:   payload.Title,
				Body:    payload.Message,
				Icon:    "battery-low",
				Urgency: urgency,
			})
		case events.ProfileChanged:
			payload, err := events.DecodeAs[events.ProfileChangedEvent](ev)
			if err != nil {
				logrus.WithError(err).Error("failed to decode profile.changed event")
				continue
			}
			logrus.WithField("mode", payload.Mode).Info("power mode changed")
		}
	}
}
