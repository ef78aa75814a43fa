// Package web serves the analysis dashboard and its JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/wavescope/config"
)

var srv *http.Server
var waitGroup = &sync.WaitGroup{}
var reload = false

// Init starts the dashboard listener in the background. The returned
// wait group is released when the server exits for good, so callers
// block on it after adding themselves.
func Init() *sync.WaitGroup {
	address := net.JoinHostPort(config.Get().Server.BindAddress, strconv.Itoa(config.Get().Server.Port))

	var handler http.Handler = buildRoutes(newServer())
	if config.Get().Server.RateLimit.Enabled {
		logrus.Debug("Enabling rate limit")
		handler = tollbooth.LimitHandler(requestLimiter(), handler)
	}

	srv = &http.Server{Addr: address, Handler: handler}
	reload = false

	go func() {
		logrus.WithField("address", address).Info("Started dashboard. Listening at http://" + address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			logrus.Fatal(err)
		}

		srv = nil

		if !reload {
			waitGroup.Done()
		}
	}()

	return waitGroup
}

func requestLimiter() *limiter.Limiter {
	cfg := config.Get().Server.RateLimit

	lim := tollbooth.NewLimiter(0, nil)
	lim.SetIPLookups([]string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"})
	lim.SetTokenBucketExpirationTTL(time.Hour)
	lim.SetBurst(cfg.BurstCount)
	lim.SetMax(cfg.RequestsPerSecond)

	b, _ := json.Marshal(errorResponse{Error: "rate limited"})
	lim.SetMessage(string(b))
	lim.SetMessageContentType("application/json")

	return lim
}

// Reload swaps the listener for one built from the current config.
func Reload() {
	reload = true
	Stop()

	// Stop just shut the server down, so start it anew
	Init()
}

// Stop shuts the listener down, draining in-flight requests for up to
// five seconds.
func Stop() {
	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Error("error shutting down dashboard: ", err)
	}
}
