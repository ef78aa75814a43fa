package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/config"
	"github.com/cwbudde/wavescope/internal/logging"
	"github.com/cwbudde/wavescope/internal/metrics"
	"github.com/cwbudde/wavescope/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser dashboard and the metrics listener",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logrus.Info("Starting config watcher...")
	watcher, err := config.Watch(onConfigChange)
	if err != nil {
		return err
	}
	defer func(watcher *fsnotify.Watcher) {
		_ = watcher.Close()
	}(watcher)

	logrus.Info("Starting metrics listener...")
	metrics.Init()

	logrus.Info("Starting dashboard...")
	dashboard := web.Init()

	// Set up a listener for SIGINT
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	selfStop := false
	go func() {
		defer close(stop)
		<-stop
		selfStop = true

		logrus.Warn("Stop signal received")
		logrus.Info("Stopping metrics listener...")
		metrics.Stop()

		logrus.Info("Stopping dashboard...")
		web.Stop()
	}()

	// Wait for the dashboard to exit nicely
	dashboard.Add(1)
	dashboard.Wait()

	if !selfStop {
		metrics.Stop()
	}

	logrus.Info("Goodbye!")

	return nil
}

// onConfigChange remounts the listeners whose endpoint moved and
// reconfigures logging when its block changed. Analysis and path
// settings take effect on the next request without a restart.
func onConfigChange(previous, current *config.Config) {
	if previous.Server.BindAddress != current.Server.BindAddress ||
		previous.Server.Port != current.Server.Port ||
		previous.Server.RateLimit != current.Server.RateLimit {
		logrus.Info("Dashboard endpoint changed - reloading")
		web.Reload()
	}

	if previous.Server.MetricsBindAddress != current.Server.MetricsBindAddress ||
		previous.Server.MetricsPort != current.Server.MetricsPort {
		logrus.Info("Metrics endpoint changed - reloading")
		metrics.Reload()
	}

	if previous.Logging != current.Logging {
		logrus.Info("Logging config changed - reconfiguring")
		level := current.Logging.Level
		if verbose {
			level = "debug"
		}
		if err := logging.Setup(current.Logging.Directory, level, jsonLogs || current.Logging.JsonLogs, current.Logging.Colors); err != nil {
			logrus.Error("Error reconfiguring logging: ", err)
		}
	}
}
