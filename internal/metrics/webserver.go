package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/wavescope/config"
)

var srv *http.Server

// Init starts the metrics listener on the configured address.
func Init() {
	rtr := http.NewServeMux()
	rtr.Handle("/metrics", promhttp.Handler())

	address := config.Get().Server.MetricsBindAddress + ":" + strconv.Itoa(config.Get().Server.MetricsPort)
	srv = &http.Server{Addr: address, Handler: rtr}
	go func() {
		logrus.WithField("address", address).Info("Started metrics listener. Listening at http://" + address)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logrus.Fatal(err)
		}
	}()
}

// Reload remounts the listener, picking up a changed bind address.
func Reload() {
	Stop()
	Init()
}

// Stop drains the listener gracefully.
func Stop() {
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.Error("error stopping metrics listener: ", err)
		}
		srv = nil
	}
}
