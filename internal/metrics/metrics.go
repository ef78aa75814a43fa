// Package metrics exposes Prometheus counters for the dashboard server
// on a listener of its own, so application traffic and scrapes never
// share a port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "wavescope_http_requests_total",
}, []string{"route", "method"})
var HttpResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "wavescope_http_responses_total",
}, []string{"route", "method", "statusCode"})
var HttpResponseTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name: "wavescope_http_response_time_seconds",
}, []string{"route"})
var AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "wavescope_analyses_total",
}, []string{"source"})
var AnalysisSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name: "wavescope_analysis_seconds",
})
var CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "wavescope_cache_hits_total",
}, []string{"cache"})
var CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "wavescope_cache_misses_total",
}, []string{"cache"})
var UploadBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name: "wavescope_upload_bytes",
	// 1 KiB up to 256 MiB, well past the default upload cap.
	Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
})

func init() {
	prometheus.MustRegister(HttpRequests)
	prometheus.MustRegister(HttpResponses)
	prometheus.MustRegister(HttpResponseTime)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(AnalysisSeconds)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(UploadBytes)
}
