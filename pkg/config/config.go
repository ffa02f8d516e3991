package config

import (
	"time"

	"github.com/tlind/battray/pkg/classify"
)

// PowerMode is a named preset bundling a platform profile with display
// brightness behavior.
type PowerMode struct {
	// Profile is the powerprofilesctl profile this mode maps to.
	Profile string `json:"profile"`
	// Brightness is the display brightness percent applied on AC.
	Brightness int `json:"brightness"`
	// DimOnBattery dims the display to DimPercent when discharging.
	DimOnBattery bool `json:"dimOnBattery"`
	// DimPercent is the brightness percent used on battery.
	DimPercent int `json:"dimPercent"`
}

type Config interface {
	UpdateInterval() time.Duration
	LowBatteryUpdateInterval() time.Duration
	LowBatteryThreshold() int
	CriticalBatteryThreshold() int
	HealthWarningThreshold() int
	SmoothingWindow() int
	ShowPercentageLabel() bool
	IconThresholds() classify.Thresholds
	BatteryPaths() []string
	PowerModes() map[string]PowerMode
	DefaultPowerMode() string

	SetLowBatteryThreshold(int)
	SetShowPercentageLabel(bool)
	SetDefaultPowerMode(string)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
