package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/pkg/classify"
	"github.com/tlind/battray/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	UpdateIntervalSeconds:           ptr.To(30),
	LowBatteryUpdateIntervalSeconds: ptr.To(10),
	LowBatteryThreshold:             ptr.To(15),
	CriticalBatteryThreshold:        ptr.To(5),
	HealthWarningThreshold:          ptr.To(40),
	SmoothingWindow:                 ptr.To(5),
	ShowPercentageLabel:             ptr.To(true),
	IconThresholds:                  ptr.To(classify.DefaultThresholds),
	BatteryPaths: []string{
		"/sys/class/power_supply/BAT0",
		"/sys/class/power_supply/BAT1",
	},
	PowerModes: map[string]PowerMode{
		"Performance": {Profile: "performance", Brightness: 100, DimOnBattery: false, DimPercent: 100},
		"Balanced":    {Profile: "balanced", Brightness: 80, DimOnBattery: true, DimPercent: 60},
		"Power Saver": {Profile: "power-saver", Brightness: 40, DimOnBattery: true, DimPercent: 30},
	},
	DefaultPowerMode: ptr.To("Balanced"),
}

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

// RawFileConfig is the JSON shape of the config file. All fields are
// optional; nil means "use the built-in default".
type RawFileConfig struct {
	UpdateIntervalSeconds           *int                  `json:"updateIntervalSeconds,omitempty"`
	LowBatteryUpdateIntervalSeconds *int                  `json:"lowBatteryUpdateIntervalSeconds,omitempty"`
	LowBatteryThreshold             *int                  `json:"lowBatteryThreshold,omitempty"`
	CriticalBatteryThreshold        *int                  `json:"criticalBatteryThreshold,omitempty"`
	HealthWarningThreshold          *int                  `json:"healthWarningThreshold,omitempty"`
	SmoothingWindow                 *int                  `json:"smoothingWindow,omitempty"`
	ShowPercentageLabel             *bool                 `json:"showPercentageLabel,omitempty"`
	IconThresholds                  *classify.Thresholds  `json:"iconThresholds,omitempty"`
	BatteryPaths                    []string              `json:"batteryPaths,omitempty"`
	PowerModes                      map[string]PowerMode  `json:"powerModes,omitempty"`
	DefaultPowerMode                *string               `json:"defaultPowerMode,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		UpdateIntervalSeconds:           ptr.To(int(c.UpdateInterval() / time.Second)),
		LowBatteryUpdateIntervalSeconds: ptr.To(int(c.LowBatteryUpdateInterval() / time.Second)),
		LowBatteryThreshold:             ptr.To(c.LowBatteryThreshold()),
		CriticalBatteryThreshold:        ptr.To(c.CriticalBatteryThreshold()),
		HealthWarningThreshold:          ptr.To(c.HealthWarningThreshold()),
		SmoothingWindow:                 ptr.To(c.SmoothingWindow()),
		ShowPercentageLabel:             ptr.To(c.ShowPercentageLabel()),
		IconThresholds:                  ptr.To(c.IconThresholds()),
		BatteryPaths:                    c.BatteryPaths(),
		PowerModes:                      c.PowerModes(),
		DefaultPowerMode:                ptr.To(c.DefaultPowerMode()),
	}, nil
}

func (f *File) UpdateInterval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	seconds := *defaultFileConfig.UpdateIntervalSeconds
	if f.c.UpdateIntervalSeconds != nil {
		seconds = *f.c.UpdateIntervalSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (f *File) LowBatteryUpdateInterval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	seconds := *defaultFileConfig.LowBatteryUpdateIntervalSeconds
	if f.c.LowBatteryUpdateIntervalSeconds != nil {
		seconds = *f.c.LowBatteryUpdateIntervalSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (f *File) LowBatteryThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LowBatteryThreshold != nil {
		return *f.c.LowBatteryThreshold
	}
	return *defaultFileConfig.LowBatteryThreshold
}

func (f *File) CriticalBatteryThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.CriticalBatteryThreshold != nil {
		return *f.c.CriticalBatteryThreshold
	}
	return *defaultFileConfig.CriticalBatteryThreshold
}

func (f *File) HealthWarningThreshold() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.HealthWarningThreshold != nil {
		return *f.c.HealthWarningThreshold
	}
	return *defaultFileConfig.HealthWarningThreshold
}

func (f *File) SmoothingWindow() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.SmoothingWindow != nil {
		return *f.c.SmoothingWindow
	}
	return *defaultFileConfig.SmoothingWindow
}

func (f *File) ShowPercentageLabel() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ShowPercentageLabel != nil {
		return *f.c.ShowPercentageLabel
	}
	return *defaultFileConfig.ShowPercentageLabel
}

func (f *File) IconThresholds() classify.Thresholds {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.IconThresholds != nil {
		return *f.c.IconThresholds
	}
	return *defaultFileConfig.IconThresholds
}

func (f *File) BatteryPaths() []string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.c.BatteryPaths) > 0 {
		return f.c.BatteryPaths
	}
	return defaultFileConfig.BatteryPaths
}

func (f *File) PowerModes() map[string]PowerMode {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.c.PowerModes) > 0 {
		return f.c.PowerModes
	}
	return defaultFileConfig.PowerModes
}

func (f *File) DefaultPowerMode() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.DefaultPowerMode != nil {
		return *f.c.DefaultPowerMode
	}
	return *defaultFileConfig.DefaultPowerMode
}

func (f *File) SetLowBatteryThreshold(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i < 1 || i > 50 {
		panic("low battery threshold must be between 1 and 50")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LowBatteryThreshold = &i
}

func (f *File) SetShowPercentageLabel(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ShowPercentageLabel = &b
}

func (f *File) SetDefaultPowerMode(name string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DefaultPowerMode = &name
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"updateInterval":           f.UpdateInterval().String(),
		"lowBatteryUpdateInterval": f.LowBatteryUpdateInterval().String(),
		"lowBatteryThreshold":      f.LowBatteryThreshold(),
		"criticalBatteryThreshold": f.CriticalBatteryThreshold(),
		"healthWarningThreshold":   f.HealthWarningThreshold(),
		"smoothingWindow":          f.SmoothingWindow(),
		"showPercentageLabel":      f.ShowPercentageLabel(),
		"defaultPowerMode":         f.DefaultPowerMode(),
	}
}
