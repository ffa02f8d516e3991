package powerinfo

import "time"

// Battery status strings as reported by the kernel in
// /sys/class/power_supply/<bat>/status.
const (
	StatusCharging    = "Charging"
	StatusDischarging = "Discharging"
	StatusFull        = "Full"
	StatusNotCharging = "Not charging"
	StatusUnknown     = "Unknown"
)

// EstimateKind tells what a time estimate measures. Mixing samples of
// different kinds is meaningless, so consumers must treat a kind change
// as a reset.
type EstimateKind string

const (
	// EstimateNone means no usable estimate is available.
	EstimateNone EstimateKind = ""
	// EstimateRemaining is time until the battery is empty.
	EstimateRemaining EstimateKind = "remaining"
	// EstimateUntilFull is time until the battery is full.
	EstimateUntilFull EstimateKind = "until-full"
)

// Estimate is a raw time estimate parsed from an external tool.
type Estimate struct {
	Kind    EstimateKind `json:"kind"`
	Minutes float64      `json:"minutes"`
}

// Snapshot is one poll of the local battery state. It is recomputed on
// every refresh and never persisted.
//
// Percentage and HealthPercent are -1 when unknown. EstimateMinutes is
// the smoothed value, not the raw sample.
type Snapshot struct {
	Percentage      int          `json:"percentage"`
	Status          string       `json:"status"`
	EstimateKind    EstimateKind `json:"estimateKind"`
	EstimateMinutes float64      `json:"estimateMinutes"`
	HealthPercent   int          `json:"healthPercent"`
	PowerDrawWatts  float64      `json:"powerDrawWatts"`
	Voltage         float64      `json:"voltage"`
	Timestamp       time.Time    `json:"timestamp"`
}

// NewSnapshot returns a snapshot with all readouts set to their unknown
// placeholders.
func NewSnapshot() Snapshot {
	return Snapshot{
		Percentage:    -1,
		Status:        StatusUnknown,
		HealthPercent: -1,
		Timestamp:     time.Now(),
	}
}

// HasBattery reports whether the snapshot carries a usable percentage.
func (s Snapshot) HasBattery() bool {
	return s.Percentage >= 0
}

// Charging reports whether the battery is currently charging.
func (s Snapshot) Charging() bool {
	return s.Status == StatusCharging
}
