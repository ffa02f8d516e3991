package events

import "encoding/json"

// Event name constants
const (
	// BatterySnapshot is published after every successful poll.
	BatterySnapshot = "battery.snapshot"
	// BatteryAlert is published when a low/critical threshold is crossed.
	BatteryAlert = "battery.alert"
	// ProfileChanged is published when the power mode is switched.
	ProfileChanged = "profile.changed"
)

// Event is a generic SSE event from the daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// BatteryAlertEvent is the typed payload for battery.alert.
type BatteryAlertEvent struct {
	Level      string `json:"level"` // "low" or "critical"
	Percentage int    `json:"percentage"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Ts         int64  `json:"ts"`
}

// ProfileChangedEvent is the typed payload for profile.changed.
type ProfileChangedEvent struct {
	Mode    string `json:"mode"`
	Profile string `json:"profile"`
	Ts      int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
