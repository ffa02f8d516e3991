// Package notify sends desktop notifications through notify-send.
package notify

import (
	"context"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Urgency is a notification priority per the freedesktop spec.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

const sendTimeout = 5 * time.Second

// Notification contains the data for one desktop notification.
type Notification struct {
	Title   string
	Body    string
	Icon    string // themed icon name, optional
	Urgency Urgency
}

// Send delivers the notification via notify-send. A missing binary or a
// failed invocation is a silent no-op: notifications are best-effort.
func Send(ctx context.Context, n Notification) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	urgency := n.Urgency
	if urgency == "" {
		urgency = UrgencyNormal
	}

	args := []string{"-u", string(urgency)}
	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}
	args = append(args, n.Title, n.Body)

	if err := exec.CommandContext(ctx, "notify-send", args...).Run(); err != nil {
		logrus.WithError(err).Debug("notify-send failed")
	}
}
