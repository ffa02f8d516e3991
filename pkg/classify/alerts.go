package classify

import "strings"

// Level is a notification severity bucket.
type Level int

const (
	// LevelNone means no notification is due.
	LevelNone Level = iota
	// LevelLow is the first warning threshold.
	LevelLow
	// LevelCritical is the final warning threshold.
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelCritical:
		return "critical"
	default:
		return "none"
	}
}

// Alerter decides when a low-battery notification is due. Each threshold
// crossing fires at most once: the last level notified is remembered and
// reset whenever the battery charges, fills up, or recovers above the
// low threshold.
//
// Alerter is not safe for concurrent use; the poll loop is its only owner.
type Alerter struct {
	low      int
	critical int
	last     Level
}

// NewAlerter returns an alerter with the given percentage thresholds.
func NewAlerter(low, critical int) *Alerter {
	return &Alerter{low: low, critical: critical}
}

// SetThresholds replaces the percentage thresholds, keeping the
// crossing state intact.
func (a *Alerter) SetThresholds(low, critical int) {
	a.low = low
	a.critical = critical
}

// Check returns the level to notify for the given readout, or LevelNone
// when nothing new is due.
func (a *Alerter) Check(pct int, status string) Level {
	if pct < 0 {
		return LevelNone
	}

	switch strings.ToLower(status) {
	case "charging", "full":
		a.last = LevelNone
		return LevelNone
	}

	switch {
	case pct <= a.critical:
		if a.last != LevelCritical {
			a.last = LevelCritical
			return LevelCritical
		}
	case pct <= a.low:
		if a.last != LevelLow {
			a.last = LevelLow
			return LevelLow
		}
	default:
		a.last = LevelNone
	}

	return LevelNone
}

// Last returns the most recent level notified.
func (a *Alerter) Last() Level {
	return a.last
}
