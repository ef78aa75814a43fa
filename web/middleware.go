package web

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/wavescope/internal/metrics"
)

type ctxKey int

const loggerCtxKey ctxKey = iota

// RequestCounter hands out process-unique request ids for log
// correlation.
type RequestCounter struct {
	lastId uint64
}

func (c *RequestCounter) NextId() string {
	return "REQ-" + strconv.FormatUint(atomic.AddUint64(&c.lastId, 1), 10)
}

// requestLogger returns the entry accessLog attached to the request, so
// handlers log under the same request id.
func requestLogger(r *http.Request) *logrus.Entry {
	if l, ok := r.Context().Value(loggerCtxKey).(*logrus.Entry); ok {
		return l
	}

	return logrus.NewEntry(logrus.StandardLogger())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// accessLog logs every request with a request id and feeds the route
// metrics.
func accessLog(counter *RequestCounter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := routeTemplate(r)

			logger := logrus.WithFields(logrus.Fields{
				"method":        r.Method,
				"resource":      r.URL.Path,
				"contentLength": r.ContentLength,
				"requestId":     counter.NextId(),
				"remoteAddr":    r.RemoteAddr,
			})
			logger.Info("Received request")

			metrics.HttpRequests.With(prometheus.Labels{
				"route":  route,
				"method": r.Method,
			}).Inc()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := context.WithValue(r.Context(), loggerCtxKey, logger)
			next.ServeHTTP(rec, r.WithContext(ctx))

			took := time.Since(start)
			metrics.HttpResponses.With(prometheus.Labels{
				"route":      route,
				"method":     r.Method,
				"statusCode": strconv.Itoa(rec.status),
			}).Inc()
			metrics.HttpResponseTime.With(prometheus.Labels{
				"route": route,
			}).Observe(took.Seconds())

			logger.WithFields(logrus.Fields{
				"statusCode": rec.status,
				"took":       took.String(),
			}).Info("Handled request")
		})
	}
}

// recovery turns handler panics into a JSON 500, forwarding the panic
// to sentry when a dsn is configured.
func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestLogger(r).Error("panic serving request: ", err)
				sentry.CurrentHub().Recover(err)
				respondError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}

	return r.URL.Path
}
