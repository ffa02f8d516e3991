package tray

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/getlantern/systray"

	"github.com/tlind/battray/pkg/classify"
	"github.com/tlind/battray/pkg/client"
	"github.com/tlind/battray/pkg/config"
	"github.com/tlind/battray/pkg/profile"
)

var (
	apiClient   *client.Client
	eventCancel context.CancelFunc
)

var brightnessLevels = []int{25, 50, 75, 100}

func systrayRun() {
	systray.Run(onReady, onExit)
}

func onReady() {
	systray.SetTitle("🔋 Loading...")
	systray.SetTooltip("battray - Battery Indicator")

	mBattery := systray.AddMenuItem("Battery: -", "Current battery percentage")
	mBattery.Disable()

	mStatus := systray.AddMenuItem("Status: Connecting...", "Current battery status")
	mStatus.Disable()

	mTime := systray.AddMenuItem("Time: -", "Estimated time remaining or until full")
	mTime.Disable()

	mHealth := systray.AddMenuItem("Health: -", "Battery health relative to design capacity")
	mHealth.Disable()

	systray.AddSeparator()

	defaultMode := trayConfig().DefaultPowerMode()
	mModes := systray.AddMenuItem("Power Mode", "Switch power mode")
	modeItems := map[string]*systray.MenuItem{}
	for _, name := range modeNames() {
		modeItems[name] = mModes.AddSubMenuItemCheckbox(
			name,
			fmt.Sprintf("Switch to the %s power mode", name),
			name == defaultMode)
	}

	mBrightness := systray.AddMenuItem("Brightness", "Set screen brightness")
	brightnessItems := map[int]*systray.MenuItem{}
	for _, pct := range brightnessLevels {
		brightnessItems[pct] = mBrightness.AddSubMenuItem(
			fmt.Sprintf("%d%%", pct),
			fmt.Sprintf("Set screen brightness to %d percent", pct))
	}

	systray.AddSeparator()

	mSettings := systray.AddMenuItem("Power Settings...", "Open the desktop power settings")
	mRefresh := systray.AddMenuItem("Refresh", "Poll the battery now")

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the tray icon")

	go func() {
		modeChan := make(chan string)
		brightnessChan := make(chan int)
		actionChan := make(chan string)
		go func() {
			for name, item := range modeItems {
				go func(name string, item *systray.MenuItem) {
					for range item.ClickedCh {
						modeChan <- name
					}
				}(name, item)
			}
			for pct, item := range brightnessItems {
				go func(pct int, item *systray.MenuItem) {
					for range item.ClickedCh {
						brightnessChan <- pct
					}
				}(pct, item)
			}
			for {
				select {
				case <-mSettings.ClickedCh:
					actionChan <- "settings"
				case <-mRefresh.ClickedCh:
					actionChan <- "refresh"
				case <-mQuit.ClickedCh:
					if eventCancel != nil {
						eventCancel()
					}
					systray.Quit()
					return
				}
			}
		}()

		for {
			select {
			case name := <-modeChan:
				if _, err := apiClient.SetProfile(name); err != nil {
					log.Printf("Failed to set power mode: %v", err)
				} else {
					for n, item := range modeItems {
						if n == name {
							item.Check()
						} else {
							item.Uncheck()
						}
					}
				}
				updateStatus(mBattery, mStatus, mTime, mHealth)

			case pct := <-brightnessChan:
				if _, err := apiClient.SetBrightness(pct); err != nil {
					log.Printf("Failed to set brightness: %v", err)
				}

			case action := <-actionChan:
				switch action {
				case "settings":
					if err := openSettings(); err != nil {
						log.Printf("Failed to open power settings: %v", err)
					}
				case "refresh":
					if _, err := apiClient.Refresh(); err != nil {
						log.Printf("Failed to refresh: %v", err)
					}
					updateStatus(mBattery, mStatus, mTime, mHealth)
				}

			case <-time.After(pollInterval()):
				updateStatus(mBattery, mStatus, mTime, mHealth)
			}
		}
	}()

	updateStatus(mBattery, mStatus, mTime, mHealth)
}

func onExit() {
	log.Println("battray tray exiting")
}

// modeNames returns the configured power mode names in a stable order,
// falling back to the built-in presets when the daemon is unreachable.
func modeNames() []string {
	conf := trayConfig()
	names := make([]string, 0, len(conf.PowerModes()))
	for name := range conf.PowerModes() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// trayConfig fetches the daemon's config, or the defaults when the
// daemon is unreachable.
func trayConfig() *config.File {
	rawConfig, err := apiClient.GetConfig()
	if err != nil {
		log.Printf("Cannot get config from daemon, using defaults: %v", err)
		return config.NewFileFromConfig(nil, "")
	}
	return config.NewFileFromConfig(rawConfig, "")
}

func pollInterval() time.Duration {
	d := trayConfig().UpdateInterval()
	if d <= 0 {
		d = 30 * time.Second
	}
	return d
}

func updateStatus(mBattery, mStatus, mTime, mHealth *systray.MenuItem) {
	snap, err := apiClient.GetSnapshot()
	if err != nil {
		systray.SetTitle("🚫 Offline")
		systray.SetTooltip("battray daemon is not running")
		mBattery.SetTitle("Battery: -")
		mStatus.SetTitle("Status: Disconnected")
		mTime.SetTitle("Time: -")
		mHealth.SetTitle("Health: -")
		log.Printf("Cannot connect to daemon: %v", err)
		return
	}

	conf := trayConfig()

	statusIcon := "🔋"
	if snap.Charging() {
		statusIcon = "⚡️"
	} else if !snap.HasBattery() {
		statusIcon = "❓"
	}

	if conf.ShowPercentageLabel() && snap.HasBattery() {
		systray.SetTitle(fmt.Sprintf("%s %d%%", statusIcon, snap.Percentage))
	} else {
		systray.SetTitle(statusIcon)
	}

	timeText := classify.TimeText(snap.EstimateKind, snap.EstimateMinutes, snap.Status)
	systray.SetTooltip(classify.Tooltip(snap.Percentage, snap.Status, timeText))

	mBattery.SetTitle(classify.PercentLabel(snap.Percentage))
	mStatus.SetTitle(classify.StatusLabel(snap.Status))
	mTime.SetTitle(classify.TimeLabel(timeText))
	mHealth.SetTitle(classify.HealthLabel(snap.HealthPercent))
}

func openSettings() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return profile.OpenSettings(ctx)
}
