package daemon

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/pkg/classify"
	"github.com/tlind/battray/pkg/config"
	"github.com/tlind/battray/pkg/events"
	"github.com/tlind/battray/pkg/notify"
	"github.com/tlind/battray/pkg/powerinfo"
	"github.com/tlind/battray/pkg/smooth"
)

// snapshotSource reads raw battery state.
type snapshotSource interface {
	Snapshot() powerinfo.Snapshot
}

// estimateSource produces raw time-estimate samples.
type estimateSource interface {
	Read(ctx context.Context) powerinfo.Estimate
}

// notifyFunc delivers one desktop notification.
type notifyFunc func(ctx context.Context, n notify.Notification)

// Poller owns the refresh cycle: read sysfs, sample the estimate tool,
// smooth, classify, notify, publish. A single repeating timer drives it;
// the timer period tightens to the low-battery interval when the last
// known percentage drops below the configured cutoff.
type Poller struct {
	conf config.Config
	hub  *events.EventHub

	supply    snapshotSource
	estimates estimateSource
	buffer    *smooth.Buffer
	alerter   *classify.Alerter
	notify    notifyFunc

	// refreshMu serializes timer-driven and API-driven refreshes.
	refreshMu sync.Mutex

	interval     time.Duration
	healthWarned bool

	lastMu sync.RWMutex
	last   powerinfo.Snapshot

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPoller wires a poller from config. The battery path discovered by
// the sysfs reader also determines the upower device to query.
func NewPoller(conf config.Config, hub *events.EventHub, supply snapshotSource, estimates estimateSource) *Poller {
	return &Poller{
		conf:      conf,
		hub:       hub,
		supply:    supply,
		estimates: estimates,
		buffer:    smooth.NewBuffer(conf.SmoothingWindow()),
		alerter:   classify.NewAlerter(conf.LowBatteryThreshold(), conf.CriticalBatteryThreshold()),
		notify:    notify.Send,
		interval:  conf.UpdateInterval(),
		last:      powerinfo.NewSnapshot(),
		stopCh:    make(chan struct{}),
	}
}

// Run polls until Stop is called. It refreshes once immediately so the
// first API reads do not race an empty snapshot.
func (p *Poller) Run() {
	p.Refresh()

	timer := time.NewTimer(p.currentInterval())
	defer timer.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-timer.C:
			p.Refresh()
			timer.Reset(p.currentInterval())
		}
	}
}

// Stop terminates Run. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// Last returns the most recent snapshot.
func (p *Poller) Last() powerinfo.Snapshot {
	p.lastMu.RLock()
	defer p.lastMu.RUnlock()
	return p.last
}

func (p *Poller) currentInterval() time.Duration {
	p.lastMu.RLock()
	defer p.lastMu.RUnlock()
	return p.interval
}

// intervalFor implements the two-tier polling policy.
func (p *Poller) intervalFor(pct int) time.Duration {
	if pct >= 0 && pct < p.conf.LowBatteryThreshold() {
		return p.conf.LowBatteryUpdateInterval()
	}
	return p.conf.UpdateInterval()
}

// Refresh performs one poll cycle and returns the resulting snapshot.
// It is also called by the HTTP API for out-of-cycle refreshes.
func (p *Poller) Refresh() powerinfo.Snapshot {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	snap := p.supply.Snapshot()

	est := p.estimates.Read(context.Background())
	p.buffer.Add(est.Kind, est.Minutes)
	if mean, ok := p.buffer.Mean(); ok {
		snap.EstimateKind = p.buffer.Kind()
		snap.EstimateMinutes = mean
	}

	p.checkAlerts(snap)
	p.checkHealth(snap)

	desired := p.intervalFor(snap.Percentage)

	p.lastMu.Lock()
	changed := !reflect.DeepEqual(stripTimestamp(p.last), stripTimestamp(snap))
	p.last = snap
	if desired != p.interval {
		logrus.WithFields(logrus.Fields{
			"from": p.interval.String(),
			"to":   desired.String(),
		}).Info("poll interval changed")
		p.interval = desired
	}
	p.lastMu.Unlock()

	if changed {
		logrus.WithFields(logrus.Fields{
			"percentage": snap.Percentage,
			"status":     snap.Status,
			"estimate":   classify.TimeText(snap.EstimateKind, snap.EstimateMinutes, snap.Status),
		}).Debug("battery state changed")
	}

	p.hub.Publish(events.BatterySnapshot, snap)

	return snap
}

func stripTimestamp(s powerinfo.Snapshot) powerinfo.Snapshot {
	s.Timestamp = time.Time{}
	return s
}

// checkAlerts fires at most one notification per threshold crossing.
func (p *Poller) checkAlerts(snap powerinfo.Snapshot) {
	// Thresholds may have changed via the API since the last cycle.
	p.alerter.SetThresholds(p.conf.LowBatteryThreshold(), p.conf.CriticalBatteryThreshold())
	level := p.alerter.Check(snap.Percentage, snap.Status)
	if level == classify.LevelNone {
		return
	}

	n := notify.Notification{
		Icon:    "battery-low",
		Urgency: notify.UrgencyNormal,
	}
	switch level {
	case classify.LevelCritical:
		n.Title = "Critical Battery Level"
		n.Body = formatAlertBody(snap.Percentage, "Connect charger immediately.")
		n.Urgency = notify.UrgencyCritical
	case classify.LevelLow:
		n.Title = "Low Battery"
		n.Body = formatAlertBody(snap.Percentage, "Consider plugging in.")
	}

	logrus.WithFields(logrus.Fields{
		"level":      level.String(),
		"percentage": snap.Percentage,
	}).Info("battery alert")

	p.notify(context.Background(), n)
	p.hub.Publish(events.BatteryAlert, events.BatteryAlertEvent{
		Level:      level.String(),
		Percentage: snap.Percentage,
		Title:      n.Title,
		Message:    n.Body,
		Ts:         time.Now().Unix(),
	})
}

// checkHealth warns once per process lifetime when the battery's
// full-charge capacity has degraded below the configured threshold.
func (p *Poller) checkHealth(snap powerinfo.Snapshot) {
	if p.healthWarned || snap.HealthPercent < 0 {
		return
	}
	if snap.HealthPercent > p.conf.HealthWarningThreshold() {
		p.healthWarned = true // healthy, no need to keep checking
		return
	}

	p.healthWarned = true
	logrus.WithField("healthPercent", snap.HealthPercent).Warn("battery health is degraded")
	p.notify(context.Background(), notify.Notification{
		Title:   "Battery Health Warning",
		Body:    formatHealthBody(snap.HealthPercent),
		Icon:    "battery-caution",
		Urgency: notify.UrgencyNormal,
	})
}
