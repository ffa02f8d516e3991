package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tlind/battray/pkg/config"
	"github.com/tlind/battray/pkg/events"
	"github.com/tlind/battray/pkg/powersupply"
	"github.com/tlind/battray/pkg/upower"
)

var (
	conf   config.Config
	poller *Poller
	hub    *events.EventHub
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/snapshot", getSnapshot)
	router.GET("/percentage", getPercentage)
	router.GET("/status", getStatus)
	router.GET("/time-estimate", getTimeEstimate)
	router.GET("/icon", getIcon)
	router.POST("/refresh", postRefresh)
	router.GET("/config", getConfig)
	router.PUT("/low-threshold", setLowThreshold)
	router.GET("/profile", getProfile)
	router.PUT("/profile", setProfile)
	router.GET("/brightness", getBrightness)
	router.PUT("/brightness", setBrightness)
	router.GET("/events", getEvents)
	router.GET("/version", getVersion)

	return router
}

// Run starts the daemon: load config, bind the unix socket, start the
// poll loop, and block until SIGINT/SIGTERM.
func Run(configPath string, unixSocketPath string) error {
	router := setupRoutes()

	var err error
	conf, err = config.NewFile(configPath)
	if err != nil {
		logrus.Fatalf("failed to parse config during startup: %v", err)
	}
	if fc, ok := conf.(*config.File); ok {
		logrus.WithFields(fc.LogrusFields()).Infof("config loaded")
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.Infof("config reloaded")
		}
	}()

	srv := &http.Server{
		Handler: router,
	}

	// A stale socket from an unclean shutdown would fail the bind.
	if _, err := os.Stat(unixSocketPath); err == nil {
		logrus.Warnf("removing stale socket %s", unixSocketPath)
		_ = os.Remove(unixSocketPath)
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	// The tray and CLI run in the user session; they must be able to
	// reach the socket regardless of who started the daemon.
	if err := os.Chmod(unixSocketPath, 0666); err != nil {
		logrus.Fatal(err)
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	hub = events.NewEventHub()

	supply := powersupply.NewReader(conf.BatteryPaths())
	estimates := upower.NewReader(supply.BatteryPath())
	poller = NewPoller(conf, hub, supply, estimates)

	go func() {
		logrus.Debugln("poll loop starts")
		poller.Run()
		logrus.Debugln("poll loop stopped")
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("stopping poll loop")
	poller.Stop()

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		logrus.Errorf("failed to remove socket: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
