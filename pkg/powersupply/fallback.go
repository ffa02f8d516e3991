package powersupply

import (
	"github.com/distatus/battery"
	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/pkg/powerinfo"
)

// readFallback fills missing snapshot fields from the cross-platform
// battery library, for hosts where the direct sysfs attributes are
// absent or incomplete.
func readFallback(s *powerinfo.Snapshot) {
	batteries, err := battery.GetAll()
	if err != nil || len(batteries) == 0 {
		logrus.WithError(err).Trace("battery library fallback unavailable")
		return
	}
	bat := batteries[0]

	if s.Percentage < 0 && bat.Full > 0 {
		pct := int(bat.Current / bat.Full * 100.0)
		if pct > 100 {
			pct = 100
		}
		if pct >= 0 {
			s.Percentage = pct
		}
	}

	if s.Status == powerinfo.StatusUnknown {
		switch bat.State {
		case battery.Charging:
			s.Status = powerinfo.StatusCharging
		case battery.Discharging:
			s.Status = powerinfo.StatusDischarging
		case battery.Full:
			s.Status = powerinfo.StatusFull
		}
	}

	if s.Voltage == 0 && bat.Voltage > 0 {
		s.Voltage = bat.Voltage
	}
	if s.PowerDrawWatts == 0 && bat.ChargeRate > 0 {
		s.PowerDrawWatts = bat.ChargeRate / 1e3
	}
}
