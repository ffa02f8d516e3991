package daemon

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/pkg/backlight"
	"github.com/tlind/battray/pkg/classify"
	"github.com/tlind/battray/pkg/config"
	"github.com/tlind/battray/pkg/events"
	"github.com/tlind/battray/pkg/profile"
	"github.com/tlind/battray/pkg/version"
)

func getSnapshot(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, poller.Last())
}

func getPercentage(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, poller.Last().Percentage)
}

func getStatus(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, poller.Last().Status)
}

func getTimeEstimate(c *gin.Context) {
	s := poller.Last()
	c.IndentedJSON(http.StatusOK, classify.TimeText(s.EstimateKind, s.EstimateMinutes, s.Status))
}

func getIcon(c *gin.Context) {
	s := poller.Last()
	c.IndentedJSON(http.StatusOK, classify.IconName(s.Percentage, s.Status, conf.IconThresholds()))
}

func postRefresh(c *gin.Context) {
	c.IndentedJSON(http.StatusCreated, poller.Refresh())
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func setLowThreshold(c *gin.Context) {
	var t int
	if err := c.BindJSON(&t); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if t < 1 || t > 50 {
		err := fmt.Errorf("low battery threshold must be between 1 and 50, got %d", t)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	conf.SetLowBatteryThreshold(t)
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set low battery threshold to %d", t)

	// Re-evaluate the poll interval right away instead of waiting a tick.
	poller.Refresh()

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set low battery threshold to %d%%", t))
}

func getProfile(c *gin.Context) {
	p := profile.Current(c.Request.Context())
	if p == "" {
		c.IndentedJSON(http.StatusOK, "unknown")
		return
	}
	c.IndentedJSON(http.StatusOK, p)
}

func setProfile(c *gin.Context) {
	var name string
	if err := c.BindJSON(&name); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// Accept either a platform profile or a named preset from config.
	mode, isPreset := conf.PowerModes()[name]
	platform := name
	if isPreset {
		platform = mode.Profile
	}

	if err := profile.Set(c.Request.Context(), platform); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if isPreset {
		brightness := mode.Brightness
		if mode.DimOnBattery && !poller.Last().Charging() {
			brightness = mode.DimPercent
		}
		if err := backlight.SetPercent(c.Request.Context(), brightness); err != nil {
			logrus.WithError(err).Warn("failed to apply preset brightness")
		}

		conf.SetDefaultPowerMode(name)
		if err := conf.Save(); err != nil {
			logrus.Errorf("saveConfig failed: %v", err)
		}
	}

	logrus.Infof("set power profile to %s", platform)
	hub.Publish(events.ProfileChanged, events.ProfileChangedEvent{Mode: name, Profile: platform})

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getBrightness(c *gin.Context) {
	pct, err := backlight.Percent()
	if err != nil {
		c.IndentedJSON(http.StatusOK, -1)
		return
	}
	c.IndentedJSON(http.StatusOK, pct)
}

func setBrightness(c *gin.Context) {
	var pct int
	if err := c.BindJSON(&pct); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if pct < 1 || pct > 100 {
		err := fmt.Errorf("brightness must be between 1 and 100, got %d", pct)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := backlight.SetPercent(c.Request.Context(), pct); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusCreated, "ok")
}

func getEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
